package hashalg

import "fmt"

// Registry holds one instance per supported strategy and routes stored
// hashes to the strategy that produced them.
//
// The strategy set is closed: every Kind returned by Detect has an entry,
// so Resolve only fails for hashes Detect refuses. Registry is immutable
// after construction and safe for concurrent use.
type Registry struct {
	algs  map[Kind]Algorithm
	write Kind
}

// NewRegistry constructs a Registry from config. The write Kind selects
// the algorithm used for all new hashes (registration and password
// changes); verification always routes by the stored hash's own token.
func NewRegistry(cfg Config) (*Registry, error) {
	bc, err := NewBcrypt(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		algs: map[Kind]Algorithm{
			KindBcrypt: bc,
			KindSHA256: NewSHA256(),
			KindSHA512: NewSHA512(),
			KindAuthMe: NewAuthMe(),
		},
		write: cfg.WriteAlgorithm,
	}
	if _, ok := r.algs[r.write]; !ok {
		return nil, fmt.Errorf("hashalg: %w: unknown write algorithm %q", ErrInvalidOption, r.write)
	}
	return r, nil
}

// Resolve returns the strategy matching the stored hash's format token.
// Returns ErrUnknownFormat when the token matches no registered strategy.
func (r *Registry) Resolve(hash string) (Algorithm, error) {
	kind, ok := Detect(hash)
	if !ok {
		return nil, ErrUnknownFormat
	}
	alg, ok := r.algs[kind]
	if !ok {
		return nil, ErrUnknownFormat
	}
	return alg, nil
}

// Writer returns the algorithm configured for producing new hashes.
func (r *Registry) Writer() Algorithm { return r.algs[r.write] }

// WriteKind returns the configured write algorithm's identity.
func (r *Registry) WriteKind() Kind { return r.write }

// NeedsRehash reports whether a stored hash was produced by a different
// strategy than the configured writer. Migration happens transparently on
// the next password change, which always uses the writer.
func (r *Registry) NeedsRehash(hash string) (bool, error) {
	kind, ok := Detect(hash)
	if !ok {
		return false, ErrUnknownFormat
	}
	return kind != r.write, nil
}
