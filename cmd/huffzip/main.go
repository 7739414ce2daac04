package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/huffzip/huffzip/internal/api"
	"github.com/huffzip/huffzip/internal/compression"
	"github.com/huffzip/huffzip/internal/config"
	"github.com/huffzip/huffzip/internal/logger"
)

func main() {
	var (
		serve      = flag.Bool("serve", false, "run the HTTP API server")
		compress   = flag.Bool("c", false, "compress FILE")
		decompress = flag.Bool("d", false, "decompress FILE")
		algorithm  = flag.String("a", "huffman", "compression algorithm")
		output     = flag.String("o", "", "output path (default: derived from input name)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "huffzip: loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	switch {
	case *serve:
		runServer(cfg, log)
	case *compress || *decompress:
		if flag.NArg() != 1 {
			flag.Usage()
			os.Exit(2)
		}
		if err := runFile(flag.Arg(0), *output, *algorithm, *compress); err != nil {
			log.Error().Err(err).Msg("operation failed")
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runServer(cfg *config.Config, log zerolog.Logger) {
	if cfg.String("server.environment", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, cfg, log)

	addr := ":" + cfg.String("server.port", "8080")
	log.Info().Str("addr", addr).Msg("starting huffzip service")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func runFile(path, outPath, algorithm string, compressing bool) error {
	if !compression.IsValidAlgorithm(algorithm) {
		return fmt.Errorf("unsupported algorithm %q (supported: %s)",
			algorithm, strings.Join(compression.GetSupportedAlgorithms(), ", "))
	}

	content, err := readWithProgress(path)
	if err != nil {
		return err
	}

	var (
		result []byte
		stats  *compression.Stats
	)
	if compressing {
		result, stats, err = compression.Compress(content, compression.Options{Algorithm: algorithm})
	} else {
		result, stats, err = compression.Decompress(content, compression.Options{Algorithm: algorithm})
	}
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = deriveOutputPath(path, algorithm, compressing)
	}
	if err := os.WriteFile(outPath, result, 0o644); err != nil {
		return err
	}

	fmt.Printf("%s: %d -> %d bytes (%.1f%%), wrote %s\n",
		stats.Algorithm, stats.OriginalSize, stats.ProcessedSize, stats.CompressionRatio, outPath)
	return nil
}

func readWithProgress(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.Full.Start64(info.Size())
	defer bar.Finish()
	return io.ReadAll(bar.NewProxyReader(f))
}

func deriveOutputPath(path, algorithm string, compressing bool) string {
	extensions := map[string]string{
		"huffman": ".huff",
		"gzip":    ".gz",
	}
	if compressing {
		return path + extensions[algorithm]
	}
	if ext := extensions[algorithm]; ext != "" && strings.HasSuffix(path, ext) {
		return strings.TrimSuffix(path, ext)
	}
	return path + ".out"
}
