package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FilePrinter "prints" by writing the document into a directory the
// operator can open in a browser.
type FilePrinter struct {
	dir    string
	logger *zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	lastPath string
}

func NewFilePrinter(dir string, logger *zerolog.Logger) *FilePrinter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FilePrinter{dir: dir, logger: logger, now: time.Now}
}

func (p *FilePrinter) Print(ctx context.Context, document string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create print dir: %w", err)
	}

	name := fmt.Sprintf("receipt_%s.html", p.now().Format("20060102_150405.000000000"))
	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	p.mu.Lock()
	p.lastPath = path
	p.mu.Unlock()

	p.logger.Info().Str("path", path).Msg("Receipt written")
	return nil
}

// LastPath returns the file written by the most recent Print.
func (p *FilePrinter) LastPath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPath
}
