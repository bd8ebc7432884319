package common

import (
	"os"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 日志级别
type LOG_LEVEL int

const (
	LEVEL_DEBUG LOG_LEVEL = iota
	LEVEL_INFO
	LEVEL_WARN
	LEVEL_ERROR
)

var (
	LOG_LEVEL_Name = map[LOG_LEVEL]string{
		0: "DEBUG",
		1: "INFO",
		2: "WARN",
		3: "ERROR",
	}
	LOG_LEVEL_Value = map[string]LOG_LEVEL{
		"DEBUG": 0,
		"INFO":  1,
		"WARN":  2,
		"ERROR": 3,
	}
)

func ParseLogLevel(s string) (LOG_LEVEL, error) {
	lvl, ok := LOG_LEVEL_Value[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return LEVEL_INFO, errors.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

const (
	LOG_MODE_DEV  = "DEV"
	LOG_MODE_PROD = "PROD"
)

type LogConfig struct {
	BriefMode          string
	ModuleSpecialLevel map[string]LOG_LEVEL // per-module level override

	// LogPath is the rotated log file prefix. Empty disables the file sink.
	LogPath        string
	LogLevel       LOG_LEVEL
	RotationMaxAge int // days
	RotationTime   int // hours
	RotationSize   int // MB
	ShowLine       bool
	LogInConsole   bool
}

// DefaultLogConfig returns the DEV or PROD preset.
// Console output always goes to stderr; stdout carries the labels.
func DefaultLogConfig(isDEV bool) *LogConfig {
	if isDEV {
		return defaultBriefLogConfigForDEV()
	}

	return defaultBriefLogConfigForPROD()
}

func defaultBriefLogConfigForDEV() *LogConfig {
	return &LogConfig{
		LogLevel:       LEVEL_DEBUG,
		RotationMaxAge: 1,
		RotationTime:   1,
		RotationSize:   10,
		ShowLine:       true,
		LogInConsole:   true,
	}
}

func defaultBriefLogConfigForPROD() *LogConfig {
	return &LogConfig{
		LogPath:        "./linesep.log",
		LogLevel:       LEVEL_WARN,
		RotationMaxAge: 7,
		RotationTime:   24,
		RotationSize:   30,
		ShowLine:       false,
		LogInConsole:   true,
	}
}

func adjustLogConfig(name string, lc *LogConfig) *LogConfig {
	ok := true
	if lc.BriefMode != "" {
		if lc.BriefMode == LOG_MODE_PROD {
			ok = false
		}
		return DefaultLogConfig(ok)
	}

	newC := *lc
	newC.LogLevel, ok = lc.ModuleSpecialLevel[name]
	if !ok {
		newC.LogLevel = lc.LogLevel
	}
	newC.ModuleSpecialLevel = nil
	return &newC
}

func zapLevelOf(l LOG_LEVEL) zapcore.Level {
	switch l {
	case LEVEL_DEBUG:
		return zap.DebugLevel
	case LEVEL_INFO:
		return zap.InfoLevel
	case LEVEL_WARN:
		return zap.WarnLevel
	case LEVEL_ERROR:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func newSyncer(lcc *LogConfig) (zapcore.WriteSyncer, error) {
	var syncers []zapcore.WriteSyncer
	if lcc.LogInConsole {
		syncers = append(syncers, zapcore.Lock(os.Stderr))
	}
	if lcc.LogPath != "" {
		fileName := lcc.LogPath + ".%Y%m%d%H"
		rotationWriter, err := rotatelogs.New(
			fileName,
			rotatelogs.WithRotationTime(time.Duration(lcc.RotationTime)*time.Hour),
			rotatelogs.WithRotationSize(int64(lcc.RotationSize*1024*1024)),
			rotatelogs.WithMaxAge(time.Hour*24*time.Duration(lcc.RotationMaxAge)),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "new rotation log %s failed", lcc.LogPath)
		}
		syncers = append(syncers, zapcore.AddSync(rotationWriter))
	}
	if len(syncers) == 0 {
		return zapcore.AddSync(nopWriter{}), nil
	}
	return zapcore.NewMultiWriteSyncer(syncers...), nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func NewSugaredLogger(name string, lc *LogConfig) (*zap.SugaredLogger, error) {
	lcc := adjustLogConfig(name, lc)
	zapLevel := zapLevelOf(lcc.LogLevel)
	priorityLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	syncer, err := newSyncer(lcc)
	if err != nil {
		return nil, err
	}

	customLevelEncoder := func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + level.CapitalString() + "]")
	}
	customTimeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "line",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	core := zapcore.NewCore(encoder, syncer, priorityLevel)
	logger := zap.New(core).Named(name)

	var opts []zap.Option
	if lcc.ShowLine {
		opts = append(opts, zap.AddCaller())
	}
	// loggers are wrapped by SepLogger, skip that frame
	opts = append(opts, zap.AddCallerSkip(1))
	logger = logger.WithOptions(opts...)

	return logger.Sugar(), nil
}

const (
	MODULE_PARSER     = "[Parser]"
	MODULE_TRAINER    = "[Trainer]"
	MODULE_CLASSIFIER = "[Classifier]"
	MODULE_RUNNER     = "[Runner]"
	MODULE_CLI        = "[CLI]"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type SepLogger struct {
	zlog  *zap.SugaredLogger
	name  string
	mutex sync.RWMutex
}

func (l *SepLogger) Logger() *zap.SugaredLogger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.zlog
}

func (l *SepLogger) Debug(args ...interface{}) {
	l.Logger().Debug(args...)
}

func (l *SepLogger) Debugf(format string, args ...interface{}) {
	l.Logger().Debugf(format, args...)
}

func (l *SepLogger) Info(args ...interface{}) {
	l.Logger().Info(args...)
}

func (l *SepLogger) Infof(format string, args ...interface{}) {
	l.Logger().Infof(format, args...)
}

func (l *SepLogger) Warn(args ...interface{}) {
	l.Logger().Warn(args...)
}

func (l *SepLogger) Warnf(format string, args ...interface{}) {
	l.Logger().Warnf(format, args...)
}

func (l *SepLogger) Error(args ...interface{}) {
	l.Logger().Error(args...)
}

func (l *SepLogger) Errorf(format string, args ...interface{}) {
	l.Logger().Errorf(format, args...)
}

func (l *SepLogger) Sync() error {
	return l.Logger().Sync()
}

func (l *SepLogger) SetLogger(logger *zap.SugaredLogger) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.zlog = logger
}

var (
	sepLoggersMap = make(map[string]*SepLogger)
	loggerMutex   sync.RWMutex
	sepLogConfig  *LogConfig
)

// GetLogger returns the process-wide logger of a module, creating it on first use.
func GetLogger(name string) *SepLogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logger, ok := sepLoggersMap[name]; ok {
		return logger
	}

	if sepLogConfig == nil {
		sepLogConfig = &LogConfig{LogLevel: LEVEL_WARN, LogInConsole: true}
	}

	zapLogger, err := NewSugaredLogger(name, sepLogConfig)
	if err != nil {
		// fall back to console only, the file sink is optional
		fallback := *sepLogConfig
		fallback.LogPath = ""
		fallback.LogInConsole = true
		zapLogger, _ = NewSugaredLogger(name, &fallback)
		zapLogger.Warnf("log file disabled: %s", err)
	}
	logger := &SepLogger{
		name: name,
		zlog: zapLogger,
	}
	sepLoggersMap[name] = logger

	return logger
}

// SetLogConfig replaces the config and rebuilds every logger created so far.
func SetLogConfig(config *LogConfig) error {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	sepLogConfig = config
	for _, logger := range sepLoggersMap {
		newLogger, err := NewSugaredLogger(logger.name, sepLogConfig)
		if err != nil {
			return err
		}
		logger.SetLogger(newLogger)
	}
	return nil
}

// SyncAll flushes every logger. Errors from syncing terminals are ignored.
func SyncAll() {
	loggerMutex.RLock()
	defer loggerMutex.RUnlock()
	for _, logger := range sepLoggersMap {
		_ = logger.Sync()
	}
}
