package stores

import (
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/credential"
	"github.com/dmitrijs2005/recipes/internal/logging"
	"github.com/dmitrijs2005/recipes/internal/timex"
)

// DefaultAlertDelay lets the edit surface settle before the duplicate-login
// alert shows.
const DefaultAlertDelay = 400 * time.Millisecond

// SubscriptionPolicy decides what a failed subscribe/unsubscribe does to the
// optimistic flag.
type SubscriptionPolicy int

const (
	// SubscriptionOptimistic leaves the flipped flag until the next load.
	SubscriptionOptimistic SubscriptionPolicy = iota
	// SubscriptionReconciling reverts the flag and reloads the profile.
	SubscriptionReconciling
)

type options struct {
	clock           timex.Clock
	logger          logging.Logger
	navigator       Navigator
	notifier        Notifier
	lastArrivalWins bool
	subscriptions   SubscriptionPolicy
	alertDelay      time.Duration
	sessionTTL      time.Duration
}

type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		clock:      timex.RealClock(),
		logger:     logging.Nop(),
		navigator:  nopNavigator{},
		notifier:   nopNotifier{},
		alertDelay: DefaultAlertDelay,
		sessionTTL: credential.DefaultTTL,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithClock(c timex.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithNavigator(n Navigator) Option {
	return func(o *options) {
		if n != nil {
			o.navigator = n
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithLastArrivalWins disables request fencing: the response that completes
// last is applied even if a newer request was issued before it.
func WithLastArrivalWins() Option {
	return func(o *options) { o.lastArrivalWins = true }
}

// WithReconcilingSubscriptions selects SubscriptionReconciling.
func WithReconcilingSubscriptions() Option {
	return func(o *options) { o.subscriptions = SubscriptionReconciling }
}

func WithAlertDelay(d time.Duration) Option {
	return func(o *options) { o.alertDelay = d }
}

func WithSessionTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sessionTTL = d
		}
	}
}
