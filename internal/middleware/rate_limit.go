package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Um leitor de blog gera picos curtos (página + css + algumas imagens) e o
// resto é envio esporádico de formulário; 5 req/s com burst de 20 cobre isso
// sem atrapalhar navegação legítima.
const (
	requestsPerSecond = 5
	burstSize         = 20
	clientIdleTTL     = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	// Varredura periódica para o mapa não crescer com IPs que foram embora.
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, v := range visitors {
				if time.Since(v.lastSeen) > clientIdleTTL {
					delete(visitors, ip)
				}
			}
			mu.Unlock()
		}
	}()
}

func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		mu.Lock()
		v, found := visitors[ip]
		if !found {
			v = &visitor{limiter: rate.NewLimiter(requestsPerSecond, burstSize)}
			visitors[ip] = v
		}
		v.lastSeen = time.Now()
		allowed := v.limiter.Allow()
		mu.Unlock()

		if !allowed {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
