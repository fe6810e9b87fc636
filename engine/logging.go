package engine

import (
	"fmt"
	"io"

	"github.com/tracklab/evodrive/genetics"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination. A nil writer falls back to
// stdout.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logGeneration logs a one-line summary of a finished generation.
func (e *Engine) logGeneration(res genetics.Result, popSize int) {
	diversity := "high"
	if res.LowDiversity {
		diversity = "LOW"
	}
	Logf("=== Gen %d | pop %d | best %.1f (ever %.1f) | mean %.1f | range %.1f | diversity %s | mut rate=%.2f strength=%.2f ===",
		e.generation, popSize, res.BestFitness, e.bestEver, res.MeanFitness,
		res.FitnessRange, diversity, res.MutationRate, res.MutationStrength)
}
