// Command holtburger is a headless protocol client: it logs into a
// world server from a toml config file, drives the character-selection
// and world-entry handshake, and relays chat/world events to stdout
// while reading simple text commands from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/holtburger/holtburger/internal/client"
	"github.com/holtburger/holtburger/internal/config"
	"github.com/holtburger/holtburger/internal/messages"
	"github.com/holtburger/holtburger/internal/metrics"
	"github.com/holtburger/holtburger/internal/session"
	"github.com/holtburger/holtburger/internal/transport"
)

const clientVersion = "holtburger/1.0"

func main() {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "holtburger.toml", "path to the client's toml configuration file")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(versioninfo.Short())
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "holtburger"})

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}

	reg := metrics.NewRegistry(prometheus.DefaultRegisterer)

	transp, peerAddr, err := buildTransport(cfg)
	if err != nil {
		logger.Fatalf("building transport: %v", err)
	}
	defer transp.Close()

	sess := session.NewSession(transp, peerAddr)
	sess.Metrics = reg

	credential := client.NewCredential(cfg.Password)
	defer credential.Destroy()

	c := client.NewClient(sess, cfg.Account, credential, clientVersion)
	c.Metrics = reg

	if ds, ok := transp.(interface{ SetReadDeadline(time.Duration) error }); ok && cfg.TimeoutSeconds > 0 {
		if err := ds.SetReadDeadline(time.Duration(cfg.TimeoutSeconds) * time.Second); err != nil {
			logger.Warnf("setting read deadline: %v", err)
		}
	}

	if err := c.Connect(); err != nil {
		logger.Fatalf("handshake failed: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go runRepl(c, logger)
	go func() {
		<-sigCh
		c.Submit(client.QuitCmd{})
	}()

	go printEvents(c, cfg, logger)

	c.Run()
}

func buildTransport(cfg *config.Config) (transport.Transport, net.Addr, error) {
	if cfg.Replay != "" {
		reader, err := transport.OpenCapture(cfg.Replay)
		if err != nil {
			return nil, nil, fmt.Errorf("opening replay capture: %w", err)
		}
		return transport.NewReplayTransport(reader), &net.UDPAddr{}, nil
	}

	peerAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.Server, cfg.Port))
	if err != nil {
		return nil, nil, fmt.Errorf("resolving server address: %w", err)
	}

	udp, err := transport.DialUDP(&net.UDPAddr{})
	if err != nil {
		return nil, nil, fmt.Errorf("dialing udp: %w", err)
	}

	if cfg.Capture == "" {
		return udp, peerAddr, nil
	}

	writer, err := transport.CreateCapture(cfg.Capture)
	if err != nil {
		return nil, nil, fmt.Errorf("creating capture file: %w", err)
	}
	return transport.NewCaptureTransport(udp, writer), peerAddr, nil
}

func printEvents(c *client.Client, cfg *config.Config, logger *log.Logger) {
	var characters []messages.CharacterEntry

	for raw := range c.Events() {
		switch ev := raw.(type) {
		case client.MessageEvent:
			fmt.Printf("[%s] %s\n", ev.Message.Sender, ev.Message.Text)
		case client.CharacterListEvent:
			characters = ev.Characters
			for i, ch := range ev.Characters {
				fmt.Printf("  %d) %s\n", i, ch.Name)
			}
			if cfg.CacheEnabled {
				saveCharacterCache(cfg, characters, 0, logger)
			}
			if cfg.Character != "" {
				selectConfiguredCharacter(c, characters, cfg.Character, logger)
			}
		case client.PlayerEnteredEvent:
			fmt.Printf("entered world as %s (%s)\n", ev.Name, ev.GUID)
			if cfg.CacheEnabled {
				saveCharacterCache(cfg, characters, uint32(ev.GUID), logger)
			}
		case client.StatusUpdateEvent:
			logger.Debugf("state: %s", ev.State)
		}
	}
}

func selectConfiguredCharacter(c *client.Client, characters []messages.CharacterEntry, name string, logger *log.Logger) {
	for i, ch := range characters {
		if ch.Name == name {
			c.Submit(client.SelectCharacterByIndexCmd{Index: i})
			return
		}
	}
	logger.Warnf("configured character %q not found in character list", name)
}

func saveCharacterCache(cfg *config.Config, characters []messages.CharacterEntry, selectedGUID uint32, logger *log.Logger) {
	if cfg.CachePath == "" {
		return
	}
	cached := make([]client.CachedCharacter, len(characters))
	for i, ch := range characters {
		cached[i] = client.CachedCharacter{GUID: ch.GUID, Name: ch.Name}
	}
	cache := client.ResumeCache{Characters: cached, SelectedGUID: selectedGUID}
	if err := client.SaveResumeCache(cfg.CachePath, cfg.Password, cache); err != nil {
		logger.Warnf("saving resume cache: %v", err)
	}
}

func runRepl(c *client.Client, logger *log.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		switch fields[0] {
		case "select":
			if len(fields) != 2 {
				continue
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				logger.Warnf("select: %v", err)
				continue
			}
			c.Submit(client.SelectCharacterByIndexCmd{Index: idx})
		case "say":
			if len(fields) != 2 {
				continue
			}
			c.Submit(client.TalkCmd{Text: fields[1]})
		case "quit":
			c.Submit(client.QuitCmd{})
			return
		default:
			logger.Warnf("unrecognized command %q", fields[0])
		}
	}
}
