package rpc

import (
	"os"
	"time"

	"github.com/gotomicro/ekit/bean/option"
	"gopkg.in/yaml.v3"

	"channelcall/internal/errs"
	"channelcall/rpc/compress"
	"channelcall/rpc/compress/gzip"
	"channelcall/rpc/compress/lz4"
	"channelcall/rpc/compress/snappy"
	"channelcall/rpc/compress/zlib"
	"channelcall/rpc/serialize"
	"channelcall/rpc/serialize/json"
	"channelcall/rpc/serialize/proto"
)

var (
	serializers = map[string]serialize.Serializer{
		"json":  json.Serializer{},
		"proto": proto.Serializer{},
	}
	compressors = map[string]compress.Compressor{
		"none":   compress.DoNothingCompressor{},
		"gzip":   gzip.Compressor{},
		"zlib":   zlib.Compressor{},
		"snappy": snappy.Compressor{},
		"lz4":    lz4.Compressor{},
	}
)

// Config is the client side configuration of rpc channels.
type Config struct {
	Address      string        `yaml:"address"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	CloseTimeout time.Duration `yaml:"close_timeout"`
	Serializer   string        `yaml:"serializer"`
	Compressor   string        `yaml:"compressor"`
}

func DefaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		CloseTimeout: time.Second,
		Serializer:   "json",
		Compressor:   "none",
	}
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.factoryOptions(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

func (c Config) factoryOptions() ([]option.Option[ChannelFactory], error) {
	s, ok := serializers[c.Serializer]
	if !ok {
		return nil, errs.UnknownCodecName("serializer", c.Serializer)
	}
	cp, ok := compressors[c.Compressor]
	if !ok {
		return nil, errs.UnknownCodecName("compressor", c.Compressor)
	}
	return []option.Option[ChannelFactory]{
		FactoryWithSerializer(s),
		FactoryWithCompressor(cp),
		FactoryWithDialTimeout(c.DialTimeout),
	}, nil
}

// NewChannelFactoryFromConfig -> factory configured by cfg
func NewChannelFactoryFromConfig(cfg Config) (*ChannelFactory, error) {
	opts, err := cfg.factoryOptions()
	if err != nil {
		return nil, err
	}
	return NewChannelFactory(opts...), nil
}
