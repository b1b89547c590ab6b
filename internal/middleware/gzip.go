package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// минимальный размер ответа, при котором сжатие окупается
const gzipMinSize = 1400

// GzipMiddleware сжимает HTML- и JSON-ответы, если клиент поддерживает gzip
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.Close()

		next.ServeHTTP(gw, r)
	})
}

// gzipResponseWriter оборачивает http.ResponseWriter для сжатия ответа.
// Отправка заголовков откладывается до первой записи тела: только в этот момент
// известно, будет ли ответ сжат.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	status      int
	wroteHeader bool
}

// WriteHeader запоминает код статуса, не отправляя заголовки
func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		contentType := w.Header().Get("Content-Type")
		compressible := strings.HasPrefix(contentType, "text/html") ||
			strings.HasPrefix(contentType, "application/json")
		if compressible && len(b) >= gzipMinSize {
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Del("Content-Length")
			w.gz = gzip.NewWriter(w.ResponseWriter)
		}
		w.flushHeader()
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// Close отправляет отложенные заголовки и закрывает gzip.Writer, если сжатие было включено
func (w *gzipResponseWriter) Close() error {
	if !w.wroteHeader {
		w.flushHeader()
	}
	if w.gz == nil {
		return nil
	}
	return w.gz.Close()
}

func (w *gzipResponseWriter) flushHeader() {
	if w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
	w.wroteHeader = true
}
