package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"linesep/common"
	"linesep/core/ml"
	"linesep/core/parser"
	"linesep/core/vector"
)

const (
	EnvPrefix      = "linesep"
	EnvConfigPath  = "LINESEP_CFG_PATH"
	ConfigFileName = "linesep_config"
)

type PerceptronConfig struct {
	Epsilon      float64 `mapstructure:"epsilon"`
	MaxDimension int     `mapstructure:"max_dimension"`
}

type ParserConfig struct {
	Strict bool `mapstructure:"strict"`
}

type LogConfig struct {
	BriefMode      string            `mapstructure:"brief_mode"`
	Level          string            `mapstructure:"level"`
	ModuleLevels   map[string]string `mapstructure:"module_levels"`
	Path           string            `mapstructure:"path"`
	RotationTime   int               `mapstructure:"rotation_time"`
	RotationSize   int               `mapstructure:"rotation_size"`
	RotationMaxAge int               `mapstructure:"rotation_max_age"`
	ShowLine       bool              `mapstructure:"show_line"`
	Console        bool              `mapstructure:"console"`
}

type LocalConfig struct {
	Perceptron PerceptronConfig `mapstructure:"perceptron"`
	Parser     ParserConfig     `mapstructure:"parser"`
	Log        LogConfig        `mapstructure:"log"`

	// File is the config file that was read, empty when only defaults and env applied.
	File string `mapstructure:"-"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"epsilon":       "perceptron.epsilon",
	"max-dimension": "perceptron.max_dimension",
	"strict":        "parser.strict",
	"log-level":     "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("perceptron.epsilon", ml.DefaultEpsilon)
	v.SetDefault("perceptron.max_dimension", vector.DefaultMaxDimension)
	v.SetDefault("parser.strict", false)
	v.SetDefault("log.brief_mode", "")
	v.SetDefault("log.level", "WARN")
	v.SetDefault("log.module_levels", map[string]string{})
	v.SetDefault("log.path", "")
	v.SetDefault("log.rotation_time", 24)
	v.SetDefault("log.rotation_size", 30)
	v.SetDefault("log.rotation_max_age", 7)
	v.SetDefault("log.show_line", false)
	v.SetDefault("log.console", true)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	setDefaults(v)
	return v
}

// InitLocalConfig reads the config for cmd.
// An explicit --config file must exist. Otherwise linesep_config.yaml is
// looked up in $LINESEP_CFG_PATH (or the working directory) and may be absent.
// Flags set on the command line override the file and the environment.
func InitLocalConfig(cmd *cobra.Command) (*LocalConfig, error) {
	v := newViper()

	cmdSetConfigFile := ""
	if flag := cmd.Flags().Lookup("config"); flag != nil {
		cmdSetConfigFile = flag.Value.String()
	}
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}
	return load(v, cmdSetConfigFile)
}

// Load reads the config from file, or searches for it when file is empty.
func Load(file string) (*LocalConfig, error) {
	return load(newViper(), file)
}

func load(v *viper.Viper, file string) (*LocalConfig, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		altPath := os.Getenv(EnvConfigPath)
		if altPath == "" {
			altPath = "."
		}
		v.AddConfigPath(altPath)
		v.SetConfigName(ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	lc := &LocalConfig{}
	if err := v.Unmarshal(lc); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	lc.File = v.ConfigFileUsed()
	return lc, nil
}

func (c *LocalConfig) PerceptronOptions() (ml.Options, error) {
	opts := ml.DefaultOptions()
	opts.Epsilon = c.Perceptron.Epsilon
	return opts, opts.Validate()
}

func (c *LocalConfig) ParserOptions() (parser.Options, error) {
	if err := vector.CheckDimension(1, c.Perceptron.MaxDimension); err != nil {
		return parser.Options{}, errors.Wrap(err, "perceptron.max_dimension")
	}
	return parser.Options{
		Strict:       c.Parser.Strict,
		MaxDimension: c.Perceptron.MaxDimension,
	}, nil
}

func (c *LocalConfig) LogConfig() (*common.LogConfig, error) {
	level, err := common.ParseLogLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	special := make(map[string]common.LOG_LEVEL, len(c.Log.ModuleLevels))
	for module, l := range c.Log.ModuleLevels {
		lvl, err := common.ParseLogLevel(l)
		if err != nil {
			return nil, errors.Wrapf(err, "module %s", module)
		}
		// viper lowercases keys, loggers are named like "[Trainer]"
		special[moduleName(module)] = lvl
	}
	return &common.LogConfig{
		BriefMode:          strings.ToUpper(c.Log.BriefMode),
		ModuleSpecialLevel: special,
		LogPath:            c.Log.Path,
		LogLevel:           level,
		RotationMaxAge:     c.Log.RotationMaxAge,
		RotationTime:       c.Log.RotationTime,
		RotationSize:       c.Log.RotationSize,
		ShowLine:           c.Log.ShowLine,
		LogInConsole:       c.Log.Console,
	}, nil
}

func moduleName(key string) string {
	key = strings.Trim(key, "[]")
	if key == "" {
		return key
	}
	return "[" + strings.ToUpper(key[:1]) + key[1:] + "]"
}
