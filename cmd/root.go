package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"contentdl/internal/catalog"
	"contentdl/internal/download"
	"contentdl/internal/prompt"
	"contentdl/internal/search"
	"contentdl/internal/utils"
)

var (
	fileType    string
	limit       int
	directory   string
	parallel    bool
	available   bool
	threats     bool
	minFileSize int64
	maxFileSize int64
	noRedirects bool
	workers     int
	timeout     time.Duration
	userAgent   string
	linksFile   string
	fileLog     bool
	debug       bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "contentdl [query]",
	Short:   "Contentdl downloads files on any topic in bulk",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
		if fileLog {
			if err := utils.UseFileLog(utils.LogFile); err != nil {
				utils.PrintWarning(fmt.Sprintf("Cannot open log file, logging to stderr: %v", err))
			}
		}
		if available {
			utils.PrintHeader("Available filetypes")
			fmt.Println(catalog.RenderExtensions(catalog.FileExtensions))
			return
		}
		if threats {
			utils.PrintHeader("Common virus carrier filetypes")
			fmt.Println(catalog.RenderExtensions(catalog.ThreatExtensions))
			return
		}
		if !confirmThreat(fileType, os.Stdin, os.Stdout) {
			return
		}
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		if query == "" && linksFile == "" {
			utils.PrintError("Missing required query argument.")
			os.Exit(1)
		}
		if err := run(query); err != nil {
			utils.PrintError(fmt.Sprintf("Error: %v", err))
			os.Exit(1)
		}
	},
}

// confirmThreat gates high-threat file types behind the interactive prompt.
// Safe file types pass without touching the reader; anything but an explicit
// 'y' denies.
func confirmThreat(fileType string, in io.Reader, out io.Writer) bool {
	if !catalog.IsHighThreat(fileType) {
		return true
	}
	fmt.Fprintln(out, "WARNING: Downloading this file type may expose you to a heightened security risk.")
	return prompt.Confirm(in, out, "Press 'y' to proceed or 'n' to exit") == prompt.Confirmed
}

func run(query string) error {
	ctx := context.Background()
	if directory == "" {
		directory = utils.SanitizeDirectory(query)
	}
	if directory == "" {
		directory = "downloads"
	}
	if userAgent == "randomize" {
		userAgent = utils.GetRandomUserAgent()
	}

	var links []string
	var err error
	if linksFile != "" {
		links, err = utils.ReadLinksFile(linksFile)
		if err != nil {
			return err
		}
		links = search.FilterScheme(links)
	} else {
		utils.PrintInfo(fmt.Sprintf("Downloading %d %s files on topic %s and saving to directory: %s",
			limit, fileType, query, directory))
		client := utils.NewRetryClient(utils.HTTPClientConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		})
		engine := search.NewEngine(search.Config{
			Client:       client,
			ProbeTimeout: timeout,
		})
		links, err = engine.Search(ctx, query, fileType, limit)
		if err != nil {
			return err
		}
	}
	if len(links) == 0 {
		utils.PrintWarning("No available links found.")
		return nil
	}

	job := download.Job{
		Links:       links,
		Dir:         directory,
		FileType:    strings.ToLower(fileType),
		MinSizeKB:   minFileSize,
		MaxSizeKB:   maxFileSize,
		NoRedirects: noRedirects,
		Workers:     workers,
		Timeout:     timeout,
	}
	if parallel {
		return download.Parallel(ctx, job)
	}
	return download.Series(ctx, job)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&fileType, "file-type", "f", "pdf", "Extension of files to download")
	rootCmd.Flags().IntVarP(&limit, "limit", "l", 10, "Limit the number of search results (in multiples of 10)")
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "Directory where files will be stored (default: query with spaces replaced by hyphens)")
	rootCmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "Download files in parallel")
	rootCmd.Flags().BoolVarP(&available, "available", "a", false, "List all available filetypes")
	rootCmd.Flags().BoolVarP(&threats, "threats", "t", false, "List all common virus carrier filetypes")
	rootCmd.Flags().Int64Var(&minFileSize, "min-file-size", 0, "Minimum file size to download in Kilobytes (KB)")
	rootCmd.Flags().Int64Var(&maxFileSize, "max-file-size", -1, "Maximum file size to download in Kilobytes (KB), -1 for unbounded")
	rootCmd.Flags().BoolVar(&noRedirects, "no-redirects", false, "Prevent download redirects")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", download.DefaultWorkers, "Number of parallel download workers")
	rootCmd.Flags().DurationVar(&timeout, "timeout", utils.DefaultTimeout, "Network timeout per request (eg. 5s, 10m)")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", utils.ToolUserAgent, "User agent ('randomize' picks one at random)")
	rootCmd.Flags().StringVar(&linksFile, "links-file", "", "Path to YAML file of links to download directly, bypassing search")
	rootCmd.Flags().BoolVar(&fileLog, "file-log", false, "Write logs to "+utils.LogFile+" instead of stderr")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
