package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagelens/internal/config"
	"pagelens/internal/entity"
	"pagelens/internal/usecase"
	"pagelens/pkg/logg"
)

type Interface struct {
	config   *config.Config
	logger   *zap.Logger
	usecase  *usecase.Service
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	stopping bool
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)

	return &Interface{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase:  params.Usecase,
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  sigChan,
		stopping: false,
	}
}

func (i *Interface) Start() error {
	i.printBanner()
	i.printHelp()

	signal.Notify(i.sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-i.sigChan
		fmt.Println("\n\nInterrupt received, shutting down...")
		i.stopping = true
		i.Stop()
	}()

	if i.config.AppConfig.StartURL != "" {
		if err := i.usecase.Session.Open(i.ctx, i.config.AppConfig.StartURL); err != nil {
			i.logger.Error("Failed to open start URL", zap.Error(err))
			fmt.Printf("Error: %v\n", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if i.stopping {
			break
		}

		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			continue
		}

		if err := i.handleCommand(input); err != nil {
			if err.Error() == "exit" {
				break
			}

			i.logger.Error("Command error", zap.String(logg.Command, input), zap.Error(err))
			fmt.Printf("Error: %v\n", err)
		}
	}

	return nil
}

func (i *Interface) Stop() error {
	if i.stopping {
		return nil
	}

	i.stopping = true
	i.logger.Info("Stopping console interface...")
	i.cancel()

	fmt.Println("Goodbye!")
	os.Exit(0)

	return nil
}

func (i *Interface) handleCommand(input string) error {
	fields := strings.Fields(input)
	command := fields[0]
	args := fields[1:]

	switch command {
	case "help", "h":
		i.printHelp()

		return nil
	case "exit", "quit", "q":
		fmt.Println("Shutting down...")

		return fmt.Errorf("exit")
	case "open", "o":
		return i.cmdOpen(args)
	case "snapshot", "snap", "s":
		return i.cmdSnapshot(args)
	case "click", "c":
		return i.cmdClick(args)
	case "fill", "f":
		return i.cmdFill(args)
	case "press", "p":
		return i.cmdPress(args)
	case "text", "t":
		return i.cmdText(args)
	default:
		return fmt.Errorf("unknown command %q, type 'help' for usage", command)
	}
}

func (i *Interface) cmdOpen(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: open <url>")
	}

	if err := i.usecase.Session.Open(i.ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("Opened %s\n", args[0])

	return nil
}

func (i *Interface) cmdSnapshot(args []string) error {
	opts, err := parseSnapshotArgs(args)
	if err != nil {
		return err
	}

	snap, err := i.usecase.Session.Snapshot(i.ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s <%s>\n", snap.Title, snap.URL)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println(snap.Tree)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%d refs\n", snap.Refs.Len())

	return nil
}

func parseSnapshotArgs(args []string) (entity.SnapshotOptions, error) {
	var opts entity.SnapshotOptions

	for n := 0; n < len(args); n++ {
		switch args[n] {
		case "-i", "--interactive":
			opts.Interactive = true
		case "-c", "--cursor":
			opts.Cursor = true
			opts.Interactive = true
		case "--compact":
			opts.Compact = true
		case "-d", "--depth":
			if n+1 >= len(args) {
				return opts, fmt.Errorf("--depth requires a number")
			}

			n++

			depth, err := strconv.Atoi(args[n])
			if err != nil || depth < 1 {
				return opts, fmt.Errorf("--depth requires a positive number, got %q", args[n])
			}

			opts.MaxDepth = depth
		case "--selector":
			if n+1 >= len(args) {
				return opts, fmt.Errorf("--selector requires a value")
			}

			n++
			opts.Selector = args[n]
		default:
			return opts, fmt.Errorf("unknown snapshot flag %q", args[n])
		}
	}

	return opts, nil
}

func (i *Interface) cmdClick(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: click @<ref>")
	}

	ref := trimRef(args[0])

	if err := i.usecase.Session.Click(i.ctx, ref); err != nil {
		return err
	}

	fmt.Printf("Clicked %s\n", ref)

	return nil
}

func (i *Interface) cmdFill(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: fill @<ref> <value>")
	}

	ref := trimRef(args[0])
	value := strings.Join(args[1:], " ")

	if err := i.usecase.Session.Fill(i.ctx, ref, value); err != nil {
		return err
	}

	fmt.Printf("Filled %s\n", ref)

	return nil
}

func (i *Interface) cmdPress(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: press <key>")
	}

	if err := i.usecase.Session.Press(i.ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("Pressed %s\n", args[0])

	return nil
}

func (i *Interface) cmdText(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: text @<ref>")
	}

	ref := trimRef(args[0])

	text, err := i.usecase.Session.Text(i.ctx, ref)
	if err != nil {
		return err
	}

	fmt.Println(text)

	return nil
}

func trimRef(ref string) string {
	return strings.TrimPrefix(ref, "@")
}

func (i *Interface) printBanner() {
	banner := `
+---------------------------------------------------------+
|                                                         |
|   pagelens -- annotated page snapshots for automation   |
|                                                         |
+---------------------------------------------------------+
`
	fmt.Println(banner)
}

func (i *Interface) printHelp() {
	help := `
Available commands:
  open <url>             - Navigate to a URL
  snapshot [flags]       - Capture an annotated page snapshot
      -i, --interactive    keep only interactive elements
      -c, --cursor         also detect cursor-interactive elements
      --compact            drop structural noise
      -d, --depth <n>      limit tree depth
      --selector <css>     snapshot one subtree only
  click @<ref>           - Click the element behind a ref (e.g. @e3)
  fill @<ref> <value>    - Fill an input behind a ref
  press <key>            - Press a keyboard key (e.g. Enter)
  text @<ref>            - Print an element's text content
  help, h                - Show this help message
  exit, quit, q          - Exit the application
`
	fmt.Println(help)
}
