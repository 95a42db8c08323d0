package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/payformhq/payform/internal/config"
	"github.com/payformhq/payform/internal/mailer"
	"github.com/payformhq/payform/internal/notifier"
	"github.com/payformhq/payform/pkg/logger"
	"github.com/payformhq/payform/pkg/prom"
	"github.com/payformhq/payform/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill, os.Interrupt, syscall.SIGTERM)

	mailClient, err := mailer.NewClient(mailer.Config{
		RelayURL:    config.Get().MailRelayUrl,
		APIKey:      config.Get().MailRelayApiKey,
		FromAddress: config.Get().MailFromAddress,
		Timeout:     config.Get().MailSendTimeout,
	})
	if err != nil {
		logger.Error("failed to create mail client", "error", err)
		return
	}

	service, err := notifier.NewService(redisAdap)
	if err != nil {
		logger.Error("failed to create notification service", "error", err)
		return
	}
	service.RegisterProcessor(notifier.NewEmailProcessor(mailClient))

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	go func() {
		prom.ListenAndServer(":9100", "/metrics")
	}()

	go func() {
		err := service.Start()
		if err != nil {
			logger.Error("failed to start notification service", "error", err)
		}
	}()

	select {
	case <-c:
		service.Stop()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
