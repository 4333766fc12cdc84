package dataset

import (
	"context"
	"fmt"
	"hash/fnv"

	"golang.org/x/sync/errgroup"
)

// Each generates every sample of s across a bounded worker pool and
// passes each to fn. Sample order across workers is unspecified; fn must
// be safe for concurrent calls. The first error from generation or from
// fn cancels the remaining work.
func Each(ctx context.Context, s Sampler, workers int, fn func(Sample) error) error {
	if workers <= 0 {
		return fmt.Errorf("%w: worker count must be > 0: %d", ErrInvalidConfiguration, workers)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range s.Len() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := s.Next(i)
			if err != nil {
				return err
			}
			return fn(sample)
		})
	}
	return g.Wait()
}

// ConfigHash returns a stable FNV-64a digest of the dataset
// configuration, usable as an external content key: two datasets with
// equal hashes and equal base seeds produce identical samples.
func ConfigHash(cfg Config) uint64 {
	h := fnv.New64a()
	for _, name := range cfg.Classes {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	fmt.Fprintf(h, "%d|%d|%d|%v|%v|%v|%d",
		cfg.SamplesPerClass, cfg.NumIQSamples, cfg.SamplesPerSymbol,
		cfg.SampleRate, cfg.ExcessBandwidth, cfg.RandomPulseShaping, cfg.Seed)
	if cfg.Impairments != nil {
		fmt.Fprintf(h, "|snr[%v,%v]f%v p%v r%v",
			cfg.Impairments.SNRMin, cfg.Impairments.SNRMax,
			cfg.Impairments.FreqOffsetMax, cfg.Impairments.PhaseRandom,
			cfg.Impairments.RateOffsetMax)
		if f := cfg.Impairments.Fading; f != nil {
			fmt.Fprintf(h, "|fade%d,%v", f.NumTaps, f.PowerDecay)
		}
	}
	if cfg.Pipeline != nil {
		for _, desc := range cfg.Pipeline.StageDescriptors() {
			h.Write([]byte{0})
			h.Write([]byte(desc))
		}
	}
	if cfg.Encoder != nil {
		h.Write([]byte{1})
		for _, name := range cfg.Encoder.Classes() {
			h.Write([]byte(name))
			h.Write([]byte{0})
		}
		for _, target := range cfg.Encoder.Targets() {
			h.Write([]byte(target))
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
