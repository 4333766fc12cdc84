// Command sigsynth generates synthetic modulated-signal datasets from a
// YAML description.
//
// Usage:
//
//	sigsynth --config dataset.yaml
//	sigsynth --config dataset.yaml --count 100 --workers 8
//	sigsynth --config dataset.yaml --mqtt-broker tcp://localhost:1883 --mqtt-topic signals/raw
//	sigsynth --list-classes
//
// Broker credentials can also come from a .env file (SIGSYNTH_MQTT_USER,
// SIGSYNTH_MQTT_PASS).
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/cwbudde/sigsynth/sig/config"
	"github.com/cwbudde/sigsynth/sig/dataset"
	"github.com/cwbudde/sigsynth/sig/feed"
	"github.com/cwbudde/sigsynth/sig/mod"
)

func main() {
	var (
		configPath  = pflag.String("config", "", "YAML dataset description (required unless --list-classes)")
		count       = pflag.Int("count", 0, "generate only the first N samples (0 = whole dataset)")
		workers     = pflag.Int("workers", 4, "parallel generation workers")
		seed        = pflag.Int64("seed", -1, "override the base seed from the config (-1 = keep)")
		cacheSize   = pflag.Int("cache", -1, "override the LRU cache capacity (-1 = keep, 0 = disable)")
		envFile     = pflag.String("env-file", "", "load environment from this .env file")
		mqttBroker  = pflag.String("mqtt-broker", "", "publish samples to this MQTT broker URL")
		mqttTopic   = pflag.String("mqtt-topic", "sigsynth/samples", "MQTT topic for published samples")
		listClasses = pflag.Bool("list-classes", false, "print the modulation class catalog and exit")
	)
	pflag.Parse()

	if *listClasses {
		for _, name := range mod.Names() {
			fmt.Println(name)
		}
		return
	}
	if *configPath == "" {
		pflag.Usage()
		os.Exit(2)
	}
	if err := run(*configPath, *count, *workers, *seed, *cacheSize, *envFile, *mqttBroker, *mqttTopic); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string, count, workers int, seed int64, cacheSize int, envFile, mqttBroker, mqttTopic string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	f, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed >= 0 {
		f.Seed = seed
	}
	if cacheSize >= 0 {
		f.Cache = cacheSize
	}

	sampler, err := f.Build()
	if err != nil {
		return err
	}

	hash, err := f.Hash()
	if err != nil {
		return err
	}
	log.Printf("dataset: %d classes, %d samples, seed %d, config %016x",
		len(f.Classes), sampler.Len(), f.Seed, hash)

	var publisher *feed.Publisher
	if mqttBroker != "" {
		publisher, err = feed.NewPublisher(feed.Options{
			Broker:   mqttBroker,
			Username: os.Getenv("SIGSYNTH_MQTT_USER"),
			Password: os.Getenv("SIGSYNTH_MQTT_PASS"),
		})
		if err != nil {
			return err
		}
		defer publisher.Close()
		log.Printf("publishing to %s topic %s", mqttBroker, mqttTopic)
	}

	sampler = limit(sampler, count)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var done atomic.Int64
	start := time.Now()
	err = dataset.Each(ctx, sampler, workers, func(s dataset.Sample) error {
		if publisher != nil {
			if err := publisher.PublishSample(mqttTopic, s); err != nil {
				return err
			}
		}
		done.Add(1)
		return nil
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	n := done.Load()
	log.Printf("generated %d samples in %v (%.1f samples/s)",
		n, elapsed.Round(time.Millisecond), float64(n)/elapsed.Seconds())
	return nil
}

// limited restricts a sampler to its first n samples.
type limited struct {
	dataset.Sampler
	n int
}

func (l limited) Len() int { return l.n }

func limit(s dataset.Sampler, count int) dataset.Sampler {
	if count <= 0 || count >= s.Len() {
		return s
	}
	return limited{Sampler: s, n: count}
}
