// FILE: dobrawek/drlogger/builder.go
package drlogger

import (
	"io"
	"strings"
	"time"

	"github.com/dobrawek/drlogger/filesystem"
)

// Builder provides a fluent API for building a configured DailyFileListener.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	opts []DailyFileOption
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new DailyFileListener with the specified configuration.
func (b *Builder) Build() (*DailyFileListener, error) {
	if b.err != nil {
		return nil, b.err
	}

	listener := NewDailyFileListener(b.opts...)

	// ApplyConfig handles validation and directory creation
	if err := listener.ApplyConfig(b.cfg); err != nil {
		_ = listener.SetCleanupSchedule("")
		return nil, err
	}

	return listener, nil
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// NamePrefix sets the prefix of every generated file name.
func (b *Builder) NamePrefix(prefix string) *Builder {
	b.cfg.NamePrefix = prefix
	return b
}

// MaxFileCount sets how many files retention keeps.
func (b *Builder) MaxFileCount(count int64) *Builder {
	b.cfg.MaxFileCount = count
	return b
}

// MaxFileAgeDays sets the age after which retention removes a file.
func (b *Builder) MaxFileAgeDays(days int64) *Builder {
	b.cfg.MaxFileAgeDays = days
	return b
}

// MaxFileSize enables size rotation, e.g. "10MB". An empty string disables it.
func (b *Builder) MaxFileSize(size string) *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(size) != "" {
		if _, err := filesystem.ParseSize(size); err != nil {
			b.err = fmtErrorf("invalid max file size: %w", err)
			return b
		}
	}
	b.cfg.MaxFileSize = size
	return b
}

// MinLevel sets the lowest level the listener accepts.
func (b *Builder) MinLevel(level Level) *Builder {
	b.cfg.MinLevel = strings.ToLower(level.String())
	return b
}

// LevelString sets the lowest accepted level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseLevel(level); err != nil {
		b.err = err
		return b
	}
	b.cfg.MinLevel = level
	return b
}

// TagRegex restricts accepted records to matching tags.
func (b *Builder) TagRegex(expr string) *Builder {
	b.cfg.TagRegex = expr
	return b
}

// MessageRegex restricts accepted records to matching messages.
func (b *Builder) MessageRegex(expr string) *Builder {
	b.cfg.MessageRegex = expr
	return b
}

// Enabled turns the listener on or off.
func (b *Builder) Enabled(enabled bool) *Builder {
	b.cfg.Enabled = enabled
	return b
}

// CleanupSchedule sets a cron expression for periodic retention.
func (b *Builder) CleanupSchedule(spec string) *Builder {
	b.cfg.CleanupSchedule = spec
	return b
}

// SanitizeTags hex-encodes non-printable runes in tags.
func (b *Builder) SanitizeTags(enabled bool) *Builder {
	b.cfg.SanitizeTags = enabled
	return b
}

// InternalErrorsToStderr toggles console diagnostics.
func (b *Builder) InternalErrorsToStderr(enabled bool) *Builder {
	b.cfg.InternalErrorsToStderr = enabled
	return b
}

// FileSystem replaces the storage used by the listener.
func (b *Builder) FileSystem(fsys filesystem.FileSystem) *Builder {
	b.opts = append(b.opts, WithFileSystem(fsys))
	return b
}

// Diagnostics redirects console diagnostics.
func (b *Builder) Diagnostics(w io.Writer) *Builder {
	b.opts = append(b.opts, WithDiagnostics(w))
	return b
}

// TimeSource replaces the clock used for dates and retention.
func (b *Builder) TimeSource(now func() time.Time) *Builder {
	b.opts = append(b.opts, WithTimeSource(now))
	return b
}

// Name sets the listener name.
func (b *Builder) Name(name string) *Builder {
	b.opts = append(b.opts, WithName(name))
	return b
}
