package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/draw"
	applog "github.com/tomz197/skyraid/internal/logging"
	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/loop/client"
)

const (
	defaultHost          = "::"
	defaultPort          = "2222"
	defaultHostKeyPath   = "/app/keys/host_key"
	defaultHighScorePath = "/app/data/highscore.yaml"
	drainTimeout         = 15 * time.Second
)

// sessions tracks the running games so shutdown can wait for them.
type sessions struct {
	wg       sync.WaitGroup
	shutdown context.Context
	game     loop.Options
	logger   *log.Logger

	idleWarn       time.Duration
	idleDisconnect time.Duration
}

func main() {
	envErr := config.LoadDotEnv("")
	logger := applog.New("ssh")
	if envErr != nil {
		logger.Warn("dotenv file ignored", "err", envErr)
	}
	log.SetDefault(logger)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	gameOpts, err := config.GameOptions(logger, defaultHighScorePath)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	shutdownCtx, beginShutdown := context.WithCancel(context.Background())
	defer beginShutdown()
	games := &sessions{
		shutdown:       shutdownCtx,
		game:           gameOpts,
		logger:         logger,
		idleWarn:       config.GetEnvDuration("SKYRAID_IDLE_WARN", 0),
		idleDisconnect: config.GetEnvDuration("SKYRAID_IDLE_DISCONNECT", 0),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Stop every game, then give the sessions time to restore their terminals.
	beginShutdown()
	games.wait(drainTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// middleware runs one independent game per SSH session.
func (s *sessions) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		s.wg.Add(1)
		defer s.wg.Done()

		logger := s.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("game session started", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(s.shutdown, cancel)
		defer stop()

		game := s.game
		game.Logger = logger
		c := client.NewClient(bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc:   sizeTracker.getSize,
			Game:           game,
			Logger:         logger,
			IdleWarn:       s.idleWarn,
			IdleDisconnect: s.idleDisconnect,
		})
		if err := c.Run(ctx); err != nil {
			logger.Error("game error", "err", err)
		}

		if s.shutdown.Err() != nil {
			fmt.Fprintln(sess, "Server is shutting down. Thanks for playing!")
		}
		logger.Info("game session ended", "score", c.Game().Session.State().Score)
		next(sess)
	}
}

// wait blocks until every session has ended or timeout passes.
func (s *sessions) wait(timeout time.Duration) {
	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(timeout):
		s.logger.Warn("sessions still open after drain timeout", "timeout", timeout)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
