package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// brotliResponseWriter routes the response body through a brotli writer.
type brotliResponseWriter struct {
	http.ResponseWriter
	writer io.Writer
}

func (w *brotliResponseWriter) Write(b []byte) (int, error) {
	return w.writer.Write(b)
}

// Brotli compresses responses for clients that accept the br encoding.
// Content-Length is dropped since the compressed size is not known up front.
func Brotli(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.Contains(req.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, req)
			return
		}

		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")
		w.Header().Del("Content-Length")

		compressor := brotli.NewWriter(w)
		defer compressor.Close()

		next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, writer: compressor}, req)
	})
}
