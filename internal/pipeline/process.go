package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/gsea/gsea/cipher"
	"github.com/gsea/gsea/codec"
	"github.com/gsea/gsea/internal/config"
)

// ErrVerifyMismatch is returned when compressed output does not
// decompress back to its input.
var ErrVerifyMismatch = errors.New("verification failed: decompressed output differs from input")

// A Processor applies the configured operations to one buffer at a time.
// It is safe for concurrent use.
type Processor struct {
	cfg    config.Config
	alg    codec.Algorithm
	cipher cipher.Cipher
}

// NewProcessor resolves the algorithms named in cfg.
func NewProcessor(cfg config.Config) (*Processor, error) {
	p := &Processor{cfg: cfg}
	if cfg.Compress || cfg.Decompress {
		alg, err := codec.Lookup(cfg.CompAlg)
		if err != nil {
			return nil, err
		}
		p.alg = alg
	}
	if cfg.Encrypt || cfg.Decrypt {
		c, err := cipher.New(cfg.EncAlg, []byte(cfg.Key))
		if err != nil {
			return nil, err
		}
		p.cipher = c
	}
	return p, nil
}

// Process runs data through decrypt, decompress, compress and encrypt,
// skipping the stages that are not configured. It checks ctx between
// stages.
func (p *Processor) Process(ctx context.Context, data []byte) ([]byte, error) {
	var err error

	if p.cfg.Decrypt {
		if data, err = p.cipher.Decrypt(data); err != nil {
			return nil, fmt.Errorf("decrypt: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if p.cfg.Decompress {
		if data, err = p.alg.Decompress(data); err != nil {
			return nil, fmt.Errorf("decompress: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if p.cfg.Compress {
		compressed, err := p.alg.Compress(data, p.cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("compress: %w", err)
		}
		if p.cfg.Verify {
			if err := p.verify(data, compressed); err != nil {
				return nil, err
			}
		}
		data = compressed
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if p.cfg.Encrypt {
		if data, err = p.cipher.Encrypt(data); err != nil {
			return nil, fmt.Errorf("encrypt: %w", err)
		}
	}
	return data, nil
}

func (p *Processor) verify(original, compressed []byte) error {
	roundTrip, err := p.alg.Decompress(compressed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerifyMismatch, err)
	}
	if blake3.Sum256(roundTrip) != blake3.Sum256(original) {
		return ErrVerifyMismatch
	}
	return nil
}
