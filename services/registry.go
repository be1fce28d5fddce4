package services

import (
	"sync"

	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/realtime"
)

// Process-wide collaborators, wired by main and replaced by tests.
var (
	realtimeMu  sync.Mutex
	hub         *realtime.Hub
	broadcaster *realtime.Broadcaster

	mailer    Mailer
	forwarder *Forwarder
	payments  PaymentProvider
	media     MediaUploader
)

func InitRealtime(h *realtime.Hub, b *realtime.Broadcaster) {
	realtimeMu.Lock()
	defer realtimeMu.Unlock()
	hub = h
	broadcaster = b
}

// ensureRealtime expects realtimeMu to be held.
func ensureRealtime() {
	if hub == nil {
		hub = realtime.NewHub(config.Log)
		broadcaster = nil
	}
	if broadcaster == nil {
		broadcaster = realtime.NewBroadcaster(realtime.NewLocalBus(hub), config.Log)
	}
}

// GetHub returns the local realtime hub, creating an in-process one when none
// was configured.
func GetHub() *realtime.Hub {
	realtimeMu.Lock()
	defer realtimeMu.Unlock()
	ensureRealtime()
	return hub
}

func GetBroadcaster() *realtime.Broadcaster {
	realtimeMu.Lock()
	defer realtimeMu.Unlock()
	ensureRealtime()
	return broadcaster
}

func InitMailer(m Mailer) { mailer = m }

func GetMailer() Mailer {
	if mailer == nil {
		mailer = NewLogMailer()
	}
	return mailer
}

func InitForwarder(f *Forwarder) { forwarder = f }

// GetForwarder may return nil when analytics forwarding is not running.
func GetForwarder() *Forwarder { return forwarder }

func InitPayments(p PaymentProvider) { payments = p }

// GetPayments may return nil when card payments are not configured.
func GetPayments() PaymentProvider { return payments }

func InitMedia(m MediaUploader) { media = m }

// GetMedia may return nil when image uploads are not configured.
func GetMedia() MediaUploader { return media }
