package monitor

import (
	"context"
	"log"

	"tcg_monitor/config"
)

// GraphCapturer screenshots the price-history chart of a product page.
type GraphCapturer interface {
	CaptureGraph(ctx context.Context, pageURL, outputDir string) (path string, data []byte, err error)
}

// GraphSender uploads a captured chart image.
type GraphSender interface {
	SendGraph(path string, data []byte, pageURL string) error
}

// GraphJob captures price-history charts for every monitored page and
// uploads them. Failures are per-page: one broken chart never stops the
// rest of the batch.
type GraphJob struct {
	cfg      *config.Config
	capturer GraphCapturer
	sender   GraphSender
}

func NewGraphJob(cfg *config.Config, capturer GraphCapturer, sender GraphSender) *GraphJob {
	return &GraphJob{cfg: cfg, capturer: capturer, sender: sender}
}

func (j *GraphJob) Run(ctx context.Context) {
	log.Printf("Starting graph capture for %d pages", len(j.cfg.Pages))

	for _, pageURL := range j.cfg.Pages {
		select {
		case <-ctx.Done():
			log.Println("Graph capture cancelled")
			return
		default:
		}

		path, data, err := j.capturer.CaptureGraph(ctx, pageURL, j.cfg.Graphs.OutputDir)
		if err != nil {
			log.Printf("Failed to capture graph for %s: %v", pageURL, err)
			continue
		}

		if err := j.sender.SendGraph(path, data, pageURL); err != nil {
			log.Printf("Failed to send graph for %s: %v", pageURL, err)
			continue
		}
		log.Printf("Graph captured and sent for %s", pageURL)
	}
}
