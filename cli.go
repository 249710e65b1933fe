package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/agents/orchestrator"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/memory"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/report"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/supply"
	toolx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/tool"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/api"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/chatmodel"
	configx "github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/config"
	logx "github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/logger"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/metrics"
	qstashx "github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/qstash"
	"github.com/rs/zerolog/log"
)

// Options is the root command. Sub-commands implement flags.Commander.
type Options struct {
	EnvFile string    `short:"e" long:"env" description:"dotenv file exported before reading configuration"`
	Run     *RunCmd   `command:"run" description:"Run one optimization cycle and print the report"`
	Serve   *ServeCmd `command:"serve" description:"Serve /predict, /metrics and /health over HTTP"`
}

type RunCmd struct {
	Style string `long:"style" default:"notty" description:"markdown style for the explanation (dark, light, notty)"`
	Width int    `long:"width" default:"88" description:"wrap width for the explanation"`
}

type ServeCmd struct {
	Addr string `short:"a" long:"addr" description:"listen address, overrides HTTP_ADDR"`
}

func Run(args []string) error {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		configx.SetEnvFile(opts.EnvFile)
		reloadLogger()
		return cmd.Execute(args)
	}

	_, err := parser.ParseArgs(args)
	var flagErr *flags.Error
	if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, flagErr.Message)
		return nil
	}
	return err
}

func reloadLogger() {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		log.Warn().Err(err).Msg("logger config invalid, keeping current logger")
		return
	}
	logx.Init(*conf)
}

func (c *RunCmd) Execute([]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chatCfg, err := configx.New[chatmodel.Config]("GROQ")
	if err != nil {
		return err
	}
	chat, err := chatCfg.New(ctx)
	if err != nil {
		return err
	}

	memCfg, err := configx.New[memory.Config]("MEMORY")
	if err != nil {
		return err
	}
	store, closeStore, err := memory.Open(ctx, *memCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("close memory backend")
		}
	}()

	supplyCfg, err := configx.New[supply.Config]("SUPPLY")
	if err != nil {
		return err
	}
	tools := supply.NewToolset(*supplyCfg)
	executor := toolx.NewExecutor(tools.Forecaster, tools.Reorder, tools.Selector, tools.Reliability)

	agentCfg, err := configx.New[orchestrator.Config]("AGENT")
	if err != nil {
		return err
	}
	agentCfg.MaxTokens = chatCfg.MaxCompletionToken

	options := []orchestrator.Option{orchestrator.WithObserver(metrics.Default)}
	publisher, err := decisionPublisher()
	if err != nil {
		return err
	}
	if publisher != nil {
		options = append(options, orchestrator.WithPublisher(publisher))
	}

	agent, err := orchestrator.New(chat, executor, store, *agentCfg, options...)
	if err != nil {
		return err
	}

	res, err := agent.Run(ctx)
	if err != nil {
		return err
	}
	return report.NewPrinter(report.WithStyle(c.Style), report.WithWidth(c.Width)).Print(os.Stdout, res)
}

// decisionPublisher returns nil when QStash is not configured.
func decisionPublisher() (contractx.DecisionPublisher, error) {
	cfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return nil, nil
	}
	return qstashx.NewClient(*cfg)
}

func (c *ServeCmd) Execute([]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	supplyCfg, err := configx.New[supply.Config]("SUPPLY")
	if err != nil {
		return err
	}
	httpCfg, err := configx.New[api.Config]("HTTP")
	if err != nil {
		return err
	}
	if c.Addr != "" {
		httpCfg.Addr = c.Addr
	}

	srv, err := api.NewServer(supply.NewForecaster(*supplyCfg), metrics.Default, *httpCfg)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
