// Package singleton keeps a single PATH viewer running. A fixed loopback
// address serves both as the named resource that marks a running viewer and
// as the channel used to ask it to refresh.
package singleton

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// ErrTaken is returned by Claim when another process holds the name.
var ErrTaken = errors.New("singleton: name already held")

// Message is a request sent to the running viewer.
type Message string

const (
	MsgPing     Message = "ping"
	MsgRefresh  Message = "refresh"
	MsgActivate Message = "activate"
)

const pong = "pong envpath"

// Peer is a running viewer found by a Locator.
type Peer interface {
	Send(msg Message) error
}

// Listener is the claim held by the running viewer.
type Listener interface {
	// Messages delivers refresh and activate requests.
	Messages() <-chan Message
	Close() error
}

// Locator finds or claims the named resource.
type Locator interface {
	Find() (Peer, bool)
	Claim() (Listener, error)
}

// TCPLocator uses a fixed loopback address as the named resource.
type TCPLocator struct {
	Address string
	Timeout time.Duration
	Log     zerolog.Logger
}

func (l *TCPLocator) timeout() time.Duration {
	if l.Timeout <= 0 {
		return 300 * time.Millisecond
	}
	return l.Timeout
}

// roundTrip sends one line and reads one line back.
func roundTrip(addr string, timeout time.Duration, line string) (string, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return "", err
	}
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Now().Add(timeout))
	if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
		return "", err
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Find implements Locator. Only a listener answering the envpath ping
// counts; another program on the port does not.
func (l *TCPLocator) Find() (Peer, bool) {
	reply, err := roundTrip(l.Address, l.timeout(), string(MsgPing))
	if err != nil || reply != pong {
		return nil, false
	}
	return &tcpPeer{addr: l.Address, timeout: l.timeout()}, true
}

// Claim implements Locator.
func (l *TCPLocator) Claim() (Listener, error) {
	ln, err := net.Listen("tcp", l.Address)
	if err != nil {
		if isAddrInUse(err) {
			return nil, ErrTaken
		}
		return nil, fmt.Errorf("instance lock listen failed: %w", err)
	}
	tl := &tcpListener{ln: ln, msgs: make(chan Message, 8), log: l.Log}
	tl.wg.Add(1)
	go tl.serve()
	return tl, nil
}

func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "only one usage") || strings.Contains(msg, "address already in use")
}

type tcpPeer struct {
	addr    string
	timeout time.Duration
}

func (p *tcpPeer) Send(msg Message) error {
	reply, err := roundTrip(p.addr, p.timeout, string(msg))
	if err != nil {
		return err
	}
	if reply != "ok" {
		return fmt.Errorf("viewer rejected %q: %s", msg, reply)
	}
	return nil
}

type tcpListener struct {
	ln        net.Listener
	msgs      chan Message
	log       zerolog.Logger
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func (t *tcpListener) Messages() <-chan Message { return t.msgs }

func (t *tcpListener) Close() error {
	var err error
	t.closeOnce.Do(func() {
		err = t.ln.Close()
		t.wg.Wait()
		close(t.msgs)
	})
	return err
}

func (t *tcpListener) serve() {
	defer t.wg.Done()
	for {
		conn, err := t.ln.Accept()
		if err != nil {
			return
		}
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.handle(conn)
		}()
	}
}

func (t *tcpListener) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	msg := Message(strings.TrimSpace(line))
	switch msg {
	case MsgPing:
		_, _ = fmt.Fprintln(conn, pong)
	case MsgRefresh, MsgActivate:
		select {
		case t.msgs <- msg:
		default:
			// a refresh is already queued
		}
		_, _ = fmt.Fprintln(conn, "ok")
	default:
		t.log.Debug().Str("message", string(msg)).Msg("ignoring unknown singleton message")
		_, _ = fmt.Fprintln(conn, "unknown")
	}
}
