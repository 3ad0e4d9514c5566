package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/tiktoken-go/tokenizer"
)

// Backend names accepted by FactoryFor.
const (
	// BackendEmbedded uses BPE ranks compiled into the binary. Works offline.
	BackendEmbedded = "embedded"

	// BackendTiktoken loads BPE ranks through pkoukk/tiktoken-go, which downloads
	// them on first use and caches them under TIKTOKEN_CACHE_DIR.
	BackendTiktoken = "tiktoken"
)

// Encoder turns text into token ids for one tokenizer family.
type Encoder interface {
	Encode(text string) ([]int, error)
}

// Factory builds the encoder for an encoding name such as "cl100k_base".
type Factory func(encoding string) (Encoder, error)

// EncoderFunc adapts a plain function to the Encoder interface.
type EncoderFunc func(text string) ([]int, error)

// Encode calls f(text).
func (f EncoderFunc) Encode(text string) ([]int, error) {
	return f(text)
}

// FactoryFor returns the factory for a backend name. An empty name selects
// BackendEmbedded.
func FactoryFor(backend string) (Factory, error) {
	switch backend {
	case "", BackendEmbedded:
		return Embedded, nil
	case BackendTiktoken:
		return Tiktoken, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// embeddedEncoder wraps a tiktoken-go/tokenizer codec.
type embeddedEncoder struct {
	codec tokenizer.Codec
}

// Embedded builds an encoder from the BPE tables bundled with
// github.com/tiktoken-go/tokenizer.
func Embedded(encoding string) (Encoder, error) {
	codec, err := tokenizer.Get(tokenizer.Encoding(encoding))
	if err != nil {
		return nil, fmt.Errorf("load embedded encoding %q: %w", encoding, err)
	}
	return &embeddedEncoder{codec: codec}, nil
}

func (e *embeddedEncoder) Encode(text string) ([]int, error) {
	ids, _, err := e.codec.Encode(text)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out, nil
}

// tiktokenEncoder wraps a pkoukk/tiktoken-go encoding.
type tiktokenEncoder struct {
	enc *tiktoken.Tiktoken
}

// Tiktoken builds an encoder through github.com/pkoukk/tiktoken-go.
func Tiktoken(encoding string) (Encoder, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)
	}
	return &tiktokenEncoder{enc: enc}, nil
}

func (e *tiktokenEncoder) Encode(text string) ([]int, error) {
	// No disallowed set: special-token text such as "<|endoftext|>" is
	// counted as ordinary text instead of panicking.
	return e.enc.Encode(text, nil, nil), nil
}
