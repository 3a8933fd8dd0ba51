// Package network provides a listener wrapper that redirects plain HTTP
// requests arriving on a TLS port to their HTTPS equivalent.
package network

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"net/http"
	"sync"
)

type autoHttpsListener struct {
	net.Listener
}

// NewAutoHttpsListener wraps a listener so that accepted connections answer
// plaintext HTTP requests with a redirect to HTTPS.
func NewAutoHttpsListener(listener net.Listener) net.Listener {
	return &autoHttpsListener{Listener: listener}
}

func (l *autoHttpsListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &autoHttpsConn{Conn: conn}, nil
}

// autoHttpsConn peeks at the first read: if it parses as an HTTP request,
// the connection is answered with a 307 to the https:// URL and closed.
// Otherwise the buffered bytes are replayed and reads pass through.
type autoHttpsConn struct {
	net.Conn

	firstBuf []byte
	bufStart int

	readRequestOnce sync.Once
}

func (c *autoHttpsConn) readRequest() bool {
	c.firstBuf = make([]byte, 2048)
	n, err := c.Conn.Read(c.firstBuf)
	c.firstBuf = c.firstBuf[:n]
	if err != nil {
		return false
	}

	request, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(c.firstBuf)))
	if err != nil {
		return false
	}

	resp := http.Response{Header: http.Header{}}
	resp.StatusCode = http.StatusTemporaryRedirect
	resp.Header.Set("Location", fmt.Sprintf("https://%v%v", request.Host, request.RequestURI))
	_ = resp.Write(c.Conn)
	_ = c.Close()
	c.firstBuf = nil
	return true
}

func (c *autoHttpsConn) Read(buf []byte) (int, error) {
	c.readRequestOnce.Do(func() {
		c.readRequest()
	})

	if c.firstBuf != nil {
		n := copy(buf, c.firstBuf[c.bufStart:])
		c.bufStart += n
		if c.bufStart >= len(c.firstBuf) {
			c.firstBuf = nil
		}
		return n, nil
	}

	return c.Conn.Read(buf)
}
