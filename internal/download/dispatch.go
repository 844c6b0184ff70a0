// Package download transfers accepted links to local storage, sequentially or
// through a bounded worker pool. Files land under their final name only after
// a successful transfer; partial output stays in a temp directory.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"contentdl/internal/utils"
)

const (
	DefaultWorkers = 4
	tempDirName    = ".contentdl-temp"
	copyBufferSize = 1024 * 256
)

var errSkipped = errors.New("skipped")

// Job describes one dispatch run. MaxSizeKB of -1 means unbounded above.
type Job struct {
	Links       []string
	Dir         string
	FileType    string
	MinSizeKB   int64
	MaxSizeKB   int64
	NoRedirects bool
	Workers     int
	Timeout     time.Duration
}

func (j Job) newClient() *http.Client {
	timeout := j.Timeout
	if timeout == 0 {
		timeout = utils.DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	if j.NoRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

// Series downloads the links one after another. Per-link failures are logged
// and isolated; the aggregate error reports how many links failed.
func Series(ctx context.Context, job Job) error {
	log := utils.GetLogger("download")
	targets, err := prepare(job)
	if err != nil {
		return err
	}
	defer cleanTemp(job.Dir)
	client := job.newClient()
	var failed int
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		written, err := fetchLink(ctx, client, job, t)
		if err != nil {
			if errors.Is(err, errSkipped) {
				utils.PrintDetail(fmt.Sprintf("Skipped %s (%v)", t.link, err))
				continue
			}
			failed++
			log.Error().Err(err).Str("url", t.link).Msg("Download failed")
			continue
		}
		utils.PrintSuccess(fmt.Sprintf("Downloaded %s (%s)", t.path, utils.FormatBytes(uint64(written))))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(targets))
	}
	return nil
}

// Parallel fans the links out to a bounded worker pool and waits for every
// task to finish or fail on its own. No link blocks another from starting.
func Parallel(ctx context.Context, job Job) error {
	log := utils.GetLogger("download")
	targets, err := prepare(job)
	if err != nil {
		return err
	}
	defer cleanTemp(job.Dir)
	workers := job.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	client := job.newClient()
	targetCh := make(chan target, len(targets))
	for _, t := range targets {
		targetCh <- t
	}
	close(targetCh)

	var failed atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range targetCh {
				if ctx.Err() != nil {
					return
				}
				written, err := fetchLink(ctx, client, job, t)
				if err != nil {
					if errors.Is(err, errSkipped) {
						utils.PrintDetail(fmt.Sprintf("Skipped %s (%v)", t.link, err))
						continue
					}
					failed.Add(1)
					log.Error().Err(err).Str("url", t.link).Msg("Download failed")
					continue
				}
				utils.PrintSuccess(fmt.Sprintf("Downloaded %s (%s)", t.path, utils.FormatBytes(uint64(written))))
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d downloads failed", n, len(targets))
	}
	return nil
}

type target struct {
	link string
	path string
}

// prepare creates the output directory and derives one distinct output path
// per link up front, so parallel tasks never race on the same file.
func prepare(job Job) ([]target, error) {
	if err := os.MkdirAll(job.Dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %v", err)
	}
	seen := make(map[string]bool)
	targets := make([]target, 0, len(job.Links))
	for _, link := range job.Links {
		name := utils.DeriveFilename(link, job.FileType)
		path := filepath.Join(job.Dir, name)
		for {
			_, err := os.Stat(path)
			if err == nil || seen[path] {
				path = utils.RenewOutputPath(path)
				continue
			}
			break
		}
		seen[path] = true
		targets = append(targets, target{link: link, path: path})
	}
	return targets, nil
}

func fetchLink(ctx context.Context, client *http.Client, job Job, t target) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.link, nil)
	if err != nil {
		return 0, fmt.Errorf("error creating GET request: %v", err)
	}
	req.Header.Set("User-Agent", utils.ToolUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error executing GET request: %v", err)
	}
	defer resp.Body.Close()

	if job.NoRedirects && resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return 0, fmt.Errorf("%w: redirect response (%d) with redirects disabled", errSkipped, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if resp.ContentLength >= 0 && !withinBounds(resp.ContentLength, job.MinSizeKB, job.MaxSizeKB) {
		return 0, fmt.Errorf("%w: size %d bytes outside bounds", errSkipped, resp.ContentLength)
	}
	return writeFile(resp.Body, t.path, job.MinSizeKB, job.MaxSizeKB)
}

// writeFile streams the body into a .part file in the temp directory and
// renames it into place only once the size bounds hold for the actual bytes.
func writeFile(body io.Reader, outputPath string, minKB, maxKB int64) (int64, error) {
	tempDir := filepath.Join(filepath.Dir(outputPath), tempDirName)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return 0, fmt.Errorf("error creating temp directory: %v", err)
	}
	tempPath := fmt.Sprintf("%s.part", filepath.Join(tempDir, filepath.Base(outputPath)))
	outFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("error creating temp file: %v", err)
	}

	reader := body
	if maxKB >= 0 {
		reader = io.LimitReader(body, maxKB*1024+1)
	}
	written, err := io.CopyBuffer(outFile, reader, make([]byte, copyBufferSize))
	closeErr := outFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return 0, fmt.Errorf("error writing file: %v", err)
	}
	if !withinBounds(written, minKB, maxKB) {
		os.Remove(tempPath)
		return 0, fmt.Errorf("%w: size %d bytes outside bounds", errSkipped, written)
	}
	if err := os.Rename(tempPath, outputPath); err != nil {
		os.Remove(tempPath)
		return 0, fmt.Errorf("error finalizing output file: %v", err)
	}
	return written, nil
}

// cleanTemp drops the temp directory once a dispatch run is over; leftover
// .part files from failed links go with it.
func cleanTemp(dir string) {
	os.RemoveAll(filepath.Join(dir, tempDirName))
}

func withinBounds(sizeBytes, minKB, maxKB int64) bool {
	if sizeBytes < minKB*1024 {
		return false
	}
	if maxKB >= 0 && sizeBytes > maxKB*1024 {
		return false
	}
	return true
}
