package bench

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// memorySampleTimeout bounds the docker stats call.
const memorySampleTimeout = 10 * time.Second

var runMemoryCommand = dockerMemUsage

// MeasureMemory takes a point-in-time memory reading for the named container
// via docker stats. A missing docker binary, command failure, or unparsable
// output all yield nil: an unknown reading, never an error.
func MeasureMemory(ctx context.Context, container string) *MemorySample {
	ctx, cancel := context.WithTimeout(ctx, memorySampleTimeout)
	defer cancel()

	out, err := runMemoryCommand(ctx, container)
	if err != nil {
		return nil
	}

	return parseMemUsage(out)
}

func dockerMemUsage(ctx context.Context, container string) (string, error) {
	cmd := exec.CommandContext(ctx, "docker", "stats", container, "--no-stream", "--format", "{{.MemUsage}}")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parseMemUsage parses docker's "95.2MiB / 512MiB" usage format into a
// sample normalized to megabytes. A limit of zero is reported as no limit.
func parseMemUsage(out string) *MemorySample {
	parts := strings.Split(strings.TrimSpace(out), "/")
	if len(parts) != 2 {
		return nil
	}

	current, ok := parseMagnitude(parts[0])
	if !ok {
		return nil
	}
	limit, ok := parseMagnitude(parts[1])
	if !ok {
		return nil
	}

	sample := &MemorySample{CurrentMB: current}
	if limit > 0 {
		sample.LimitMB = limit
	}
	return sample
}

// parseMagnitude converts one suffixed magnitude token ("1.5GiB", "95.2MiB",
// "820KiB", "64B") to megabytes. Suffix order matters: "B" is a suffix of
// the others.
func parseMagnitude(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasSuffix(s, "GiB"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "GiB"), 64)
		return v * 1024, err == nil
	case strings.HasSuffix(s, "MiB"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "MiB"), 64)
		return v, err == nil
	case strings.HasSuffix(s, "KiB"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "KiB"), 64)
		return v / 1024, err == nil
	case strings.HasSuffix(s, "B"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "B"), 64)
		return v / (1024 * 1024), err == nil
	}
	return 0, false
}
