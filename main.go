package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"SignPad/internal/config"
	"SignPad/internal/export"
	"SignPad/internal/net"
	"SignPad/internal/pad"
	"SignPad/internal/state"
	"SignPad/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		port       int
		noShare    bool
	)
	root := &cobra.Command{
		Use:          "signpad",
		Short:        "Draw smooth signatures and share them on the local network",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath, port)
			if err != nil {
				return err
			}
			return runHost(cmd.Context(), cfg, !noShare)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	root.Flags().IntVarP(&port, "port", "p", 0, "share port (overrides config)")
	root.Flags().BoolVar(&noShare, "no-share", false, "do not serve the drawing to mirrors")

	root.AddCommand(newJoinCmd(&configPath), newExportCmd(&configPath))
	return root
}

func loadConfig(cmd *cobra.Command, path string, port int) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("port") {
		cfg.Share.Port = port
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func runHost(ctx context.Context, cfg config.Config, share bool) error {
	log.Println("Starting as HOST")
	w, err := ui.NewPadWidget(cfg, "host")
	if err != nil {
		return err
	}
	if !share {
		ui.RunApp("SignPad", "", w)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := net.NewHub()
	publish := func() {
		text, err := w.Pad.History()
		if err != nil {
			log.Printf("[HOST] Could not serialize history: %v", err)
			return
		}
		if err := hub.Publish(text); err != nil {
			log.Printf("[HOST] Could not publish history: %v", err)
		}
	}
	w.Pad.OnChange = publish
	publish()

	go func() {
		if err := hub.Serve(ctx, cfg.Share.Port); err != nil {
			log.Printf("[HOST] Share server stopped: %v", err)
			w.SetStatus("Sharing unavailable: " + err.Error())
		}
	}()

	if cfg.Share.Advertise {
		server, err := net.Advertise(cfg.Share.Service, cfg.Share.Port)
		if err != nil {
			log.Printf("[HOST] mDNS advertise failed: %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	hostIP, err := net.GetOutgoingIP()
	if err != nil {
		return err
	}
	ui.RunApp("SignPad", net.ShareLink(hostIP, cfg.Share.Port), w)
	return nil
}

func newJoinCmd(configPath *string) *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "join [link]",
		Short: "Mirror a host's drawing, read-only",
		Long:  "Join a host by share link (signpad://ip:port). Without a link the first host found over mDNS is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			link := ""
			if len(args) == 1 {
				link = args[0]
			} else if link, err = discover(cfg.Share.Service, wait); err != nil {
				return err
			}
			url, err := net.ParseLink(link)
			if err != nil {
				return err
			}
			return runMirror(cmd.Context(), cfg, url)
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 3*time.Second, "how long to look for hosts")
	return cmd
}

func discover(service string, wait time.Duration) (string, error) {
	log.Printf("Looking for hosts (%s) for %v", service, wait)
	found := make(chan string, 1)
	err := net.Browse(service, wait, func(addr string) {
		select {
		case found <- addr:
		default:
		}
	})
	if err != nil {
		return "", fmt.Errorf("browse: %w", err)
	}
	select {
	case addr := <-found:
		return addr, nil
	default:
		return "", errors.New("no host found on the local network")
	}
}

func runMirror(ctx context.Context, cfg config.Config, url string) error {
	log.Println("Starting as MIRROR of", url)
	w, err := ui.NewPadWidget(cfg, "mirror")
	if err != nil {
		return err
	}
	w.ViewOnly = true

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		w.SetStatus("Connecting to " + url)
		err := net.Mirror(ctx, url, func(history string) error {
			h, err := state.ParseHistory(history)
			if err != nil {
				return err
			}
			// Play draws over what is on screen, and the host may have undone.
			w.Pad.Clear()
			_, err = w.Pad.Play(pad.Strokes(h), 0)
			if err == nil {
				w.SetStatus(fmt.Sprintf("Mirroring %d strokes", len(w.Pad.Strokes())))
			}
			return err
		})
		if err != nil {
			w.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
		}
	}()

	ui.RunApp("SignPad (view only)", "", w)
	return nil
}

func newExportCmd(configPath *string) *cobra.Command {
	var pngPath, pdfPath string
	var crop bool
	cmd := &cobra.Command{
		Use:   "export <history.json>",
		Short: "Render a saved history to PNG and/or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pngPath == "" && pdfPath == "" {
				return errors.New("nothing to do: pass --png and/or --pdf")
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			h, err := export.ReadHistory(args[0])
			if err != nil {
				return err
			}
			if pngPath != "" {
				if err := writeFile(pngPath, func(f *os.File) error { return export.PNG(f, h, cfg) }); err != nil {
					return err
				}
			}
			if pdfPath != "" {
				if err := writeFile(pdfPath, func(f *os.File) error { return export.PDF(f, h, cfg, crop) }); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "write a PNG of the canvas")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a vector PDF")
	cmd.Flags().BoolVar(&crop, "crop", false, "crop the PDF page to the ink")
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("[EXPORT] Wrote %s", path)
	return f.Close()
}
