package myratelimit

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MarcGrol/onlineshop/lib/mycontext"
	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/mylog"
	"github.com/MarcGrol/onlineshop/lib/mytime"
)

const idleTimeout = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out a token bucket per client address.
type Limiter struct {
	sync.Mutex
	nower    mytime.Nower
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
	logger   mylog.Logger

	// behindProxy keys on the first X-Forwarded-For hop instead of the peer address.
	behindProxy bool
}

func New(nower mytime.Nower, perMinute int, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		nower:    nower,
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		visitors: map[string]*visitor{},
		logger:   mylog.New("ratelimit"),

		// On Google Cloud every request reaches us through the front end proxy.
		behindProxy: os.Getenv("GOOGLE_CLOUD_PROJECT") != "",
	}
}

func (l *Limiter) Allow(key string) bool {
	l.Lock()
	defer l.Unlock()

	now := l.nower.Now()
	l.evictIdle(now)

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{
			limiter: rate.NewLimiter(l.limit, l.burst),
		}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (l *Limiter) evictIdle(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleTimeout {
			delete(l.visitors, key)
		}
	}
}

// Middleware rejects requests with 429 once the client address runs out of tokens.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientAddress(r)) {
			c := mycontext.ContextFromHTTPRequest(r)
			myhttp.NewWriter(l.logger).WriteError(c, w, 1, myerrors.NewTooManyRequestsError(fmt.Errorf("too many requests, try again later")))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) clientAddress(r *http.Request) string {
	if l.behindProxy {
		first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
