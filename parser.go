package osmnet

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Parser struct {
	filename string
	cfg      *NetworkConfiguration
	logger   *zap.Logger
	poolSize int
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Network parser parameters:
	filename: '%s'
	urban_buffer_meters: %f
	name_max_length: %d
	pool_size: %d
	`,
		parser.filename,
		parser.cfg.UrbanBufferMeters(),
		parser.cfg.NameMaxLength(),
		parser.poolSize,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename: fileName,
		cfg:      DefaultNetworkConfiguration(),
		logger:   zap.NewNop(),
		poolSize: runtime.GOMAXPROCS(0),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

func WithConfiguration(cfg *NetworkConfiguration) func(*Parser) {
	return func(parser *Parser) {
		if cfg != nil {
			parser.cfg = cfg
		}
	}
}

func WithLogger(logger *zap.Logger) func(*Parser) {
	return func(parser *Parser) {
		if logger != nil {
			parser.logger = logger
		}
	}
}

// WithPoolSize sets number of PBF decoding goroutines
func WithPoolSize(poolSize int) func(*Parser) {
	return func(parser *Parser) {
		if poolSize > 0 {
			parser.poolSize = poolSize
		}
	}
}

// CreateNetwork reads the extract and builds canonical network from it
func (parser *Parser) CreateNetwork() (*Network, error) {
	parser.logger.Sugar().Infof("Reading '%s'", parser.filename)
	src, err := NewOSMFileSource(parser.filename, parser.poolSize, parser.logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read OSM file")
	}
	return BuildNetwork(src, parser.cfg, parser.logger)
}
