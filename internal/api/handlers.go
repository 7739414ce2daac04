package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/huffzip/huffzip/internal/compression"
	"github.com/huffzip/huffzip/internal/config"
)

// CompressRequest represents the compression request payload
type CompressRequest struct {
	Algorithm string `form:"algorithm" binding:"required"`
}

// DecompressRequest represents the decompression request payload
type DecompressRequest struct {
	Algorithm string `form:"algorithm" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handler serves the compression endpoints.
type Handler struct {
	maxFileSize int64
	log         zerolog.Logger
}

// NewHandler builds a Handler from configuration.
func NewHandler(cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		maxFileSize: cfg.Int64("server.max_file_size", 50*1024*1024),
		log:         log,
	}
}

// Compress handles file compression requests
func (h *Handler) Compress(c *gin.Context) {
	var req CompressRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}

	content, filename, ok := h.readUpload(c, req.Algorithm)
	if !ok {
		return
	}

	compressedData, stats, err := compression.Compress(content, compression.Options{
		Algorithm: req.Algorithm,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Compression failed",
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		return
	}
	h.log.Info().
		Str("algorithm", stats.Algorithm).
		Int("original_size", stats.OriginalSize).
		Int("processed_size", stats.ProcessedSize).
		Float64("ratio", stats.CompressionRatio).
		Msg("compressed upload")

	name := fmt.Sprintf("%s_compressed.%s", getBaseFilename(filename), getExtensionForAlgorithm(req.Algorithm))
	sendAttachment(c, name, compressedData)
}

// Decompress handles file decompression requests
func (h *Handler) Decompress(c *gin.Context) {
	var req DecompressRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}

	content, filename, ok := h.readUpload(c, req.Algorithm)
	if !ok {
		return
	}

	decompressedData, stats, err := compression.Decompress(content, compression.Options{
		Algorithm: req.Algorithm,
	})
	if err != nil {
		status := http.StatusInternalServerError
		kind := "Decompression failed"
		if compression.IsCorruptInput(err) {
			status = http.StatusBadRequest
			kind = "Invalid compressed data"
		}
		c.JSON(status, ErrorResponse{
			Error:   kind,
			Code:    status,
			Message: err.Error(),
		})
		return
	}
	h.log.Info().
		Str("algorithm", stats.Algorithm).
		Int("original_size", stats.OriginalSize).
		Int("processed_size", stats.ProcessedSize).
		Msg("decompressed upload")

	name := fmt.Sprintf("%s_decompressed.out", getBaseFilename(filename))
	sendAttachment(c, name, decompressedData)
}

// Info provides information about supported algorithms
func (h *Handler) Info(c *gin.Context) {
	info := map[string]interface{}{
		"service": "huffzip",
		"version": "1.0.0",
		"algorithms": map[string]interface{}{
			"supported": compression.GetSupportedAlgorithms(),
			"descriptions": map[string]string{
				"huffman": "Huffman coding - lossless data compression using variable-length codes",
				"gzip":    "GZIP - wrapper around DEFLATE with headers and checksums",
			},
		},
		"limits": map[string]interface{}{
			"max_file_size": fmt.Sprintf("%d bytes (%.1f MB)", h.maxFileSize, float64(h.maxFileSize)/(1024*1024)),
		},
		"endpoints": map[string]interface{}{
			"compress":   "POST /compress - Upload file for compression",
			"decompress": "POST /decompress - Upload file for decompression",
			"info":       "GET /info - Get service information",
			"health":     "GET /health - Health check",
		},
	}

	c.JSON(http.StatusOK, info)
}

// Health provides a simple health check endpoint
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "huffzip",
	})
}

// readUpload validates the algorithm and reads the multipart file,
// writing the error response itself when it returns ok=false.
func (h *Handler) readUpload(c *gin.Context, algorithm string) (content []byte, filename string, ok bool) {
	if !compression.IsValidAlgorithm(algorithm) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid algorithm",
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Supported algorithms: %v", compression.GetSupportedAlgorithms()),
		})
		return nil, "", false
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "File upload error",
			Code:    http.StatusBadRequest,
			Message: "No file provided or file upload failed",
		})
		return nil, "", false
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "File too large",
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Maximum file size is %d bytes", h.maxFileSize),
		})
		return nil, "", false
	}

	content, err = io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "File read error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
		return nil, "", false
	}
	return content, header.Filename, true
}

func sendAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// Helper functions
func getBaseFilename(filename string) string {
	if filename == "" {
		return "file"
	}

	// Remove extension
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[:i]
		}
	}
	return filename
}

func getExtensionForAlgorithm(algorithm string) string {
	extensions := map[string]string{
		"huffman": "huff",
		"gzip":    "gz",
	}

	if ext, exists := extensions[algorithm]; exists {
		return ext
	}
	return "compressed"
}
