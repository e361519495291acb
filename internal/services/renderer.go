package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// popplerRenderer rasterizes the first PDF page with poppler's
// pdftoppm, streaming the document through stdin and reading the JPEG
// from stdout so no temporary files are created.
type popplerRenderer struct {
	binary string
	dpi    int
}

func NewPopplerRenderer(binary string, dpi int) PageRenderer {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 150
	}
	return &popplerRenderer{binary: binary, dpi: dpi}
}

func (p *popplerRenderer) RenderFirstPage(ctx context.Context, data []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.binary,
		"-jpeg",
		"-r", strconv.Itoa(p.dpi),
		"-f", "1",
		"-l", "1",
		"-singlefile",
		"-", "-",
	)
	cmd.Stdin = bytes.NewReader(data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftoppm: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}

	return stdout.Bytes(), nil
}
