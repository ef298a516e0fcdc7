package common

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Error messages
const (
	ErrFailedToOpenImage    = "failed to open disc image"
	ErrFailedToReadImage    = "failed to read disc image"
	ErrFailedToParseImage   = "failed to parse disc image"
	ErrFailedToDecodeFst    = "failed to decode file system table"
	ErrFailedToEncodeFst    = "failed to encode file system table"
	ErrFailedToExtractFile  = "failed to extract file"
	ErrFailedToRebuildImage = "failed to rebuild disc image"
	ErrFailedToWriteImage   = "failed to write disc image"
	ErrFailedToCreateOutput = "failed to create output file"
	ErrFailedToReadInput    = "failed to read input file"
	ErrFailedToDecodeBanner = "failed to decode banner"
	ErrFailedToDecodeDol    = "failed to decode DOL executable"
	ErrFailedToExportInfo   = "failed to export image information"
	ErrUnsupportedExtension = "unsupported file extension"
	ErrInternalPathNotFound = "internal path not found"
	ErrInternalPathNotFile  = "internal path is not a file"
	ErrInternalPathNotDir   = "internal path is not a directory"
)

// Info messages
const (
	InfoImageLoaded     = "Loaded disc image: %s (%d bytes, %d FST entries)"
	InfoFilesExtracted  = "Extracted %d files to: %s"
	InfoSystemExtracted = "Extracted %d system files to: %s"
	InfoImageRebuilt    = "Rebuilt disc image: %s (%d bytes)"
	InfoFileInjected    = "Injected %s into %s (%d bytes)"
	InfoFileRemoved     = "Removed %s from image"
	InfoFileRenamed     = "Renamed %s to %s"
	InfoBannerExported  = "Exported banner image to: %s"
	InfoFileExtracted   = "Extracted %s to: %s (%d bytes)"
)

// Debug messages
const (
	DebugHeaderInfo = "Header: game=%s maker=%s disc=%d version=%d"
	DebugFstLayout  = "FST: offset=0x%X size=0x%X entries=%d"
	DebugFileEntry  = "File %04d: offset=0x%08X size=%-8d %s"
	DebugDirEntry   = "Dir  %04d: %s/"
	DebugFilePlaced = "Placed %s at 0x%08X (%d bytes)"
	DebugFstPlaced  = "Placed FST at 0x%08X (%d bytes)"
	DebugSystemArea = "System area: 0x0 - 0x%X (DOL at 0x%X)"
	DebugTotalSize  = "Total image size: %d bytes"
)

// Warning messages
const (
	WarnNoBannerFound   = "No banner file found in image"
	WarnEmptyFileTree   = "Image contains no files"
	WarnImageLargerThan = "Rebuilt image (%d bytes) is larger than original (%d bytes)"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		logrus.Infof(message, args...)
	} else {
		logrus.Info(message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		logrus.Warnf(message, args...)
	} else {
		logrus.Warn(message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		logrus.Errorf(message, args...)
	} else {
		logrus.Error(message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		logrus.Debugf(message, args...)
	} else {
		logrus.Debug(message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}
