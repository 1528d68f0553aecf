package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/lverne/lapwise/pkg/app"
)

// program adapts the application loop to the service manager lifecycle.
type program struct {
	cfgPath string
	errCh   chan error
}

// Start must not block; the application runs in the background.
func (p *program) Start(_ service.Service) error {
	go func() {
		p.errCh <- app.Run(app.RunParams{
			ConfigPath: p.cfgPath,
			Version:    version,
			Commit:     commit,
			Date:       date,
		})
	}()
	return nil
}

// Stop delivers the same signal the foreground mode handles, so both paths
// share one shutdown sequence.
func (p *program) Stop(_ service.Service) error {
	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		return err
	}
	return <-p.errCh
}

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "service <install|uninstall|start|stop|run>",
		Short:     "Manage lapwise as an OS service",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"install", "uninstall", "start", "stop", "run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")

			svcArgs := []string{"service", "run"}
			if cfgPath != "" {
				svcArgs = append(svcArgs, "--config", cfgPath)
			}

			svc, err := service.New(
				&program{cfgPath: cfgPath, errCh: make(chan error, 1)},
				&service.Config{
					Name:        "lapwise",
					DisplayName: "lapwise assistant",
					Description: "Conversational laptop-shopping assistant gateway",
					Arguments:   svcArgs,
				},
			)
			if err != nil {
				return err
			}

			switch args[0] {
			case "install":
				if err := svc.Install(); err != nil {
					return err
				}
				fmt.Println("Service installed")
			case "uninstall":
				if err := svc.Uninstall(); err != nil {
					return err
				}
				fmt.Println("Service uninstalled")
			case "start":
				return svc.Start()
			case "stop":
				return svc.Stop()
			case "run":
				return svc.Run()
			}
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}
