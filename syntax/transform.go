package syntax

import "github.com/risor-io/nesc/ast"

// Transformer modifies a tree before it is handed to the collector.
// Transformers receive ownership of the tree and return a (possibly new) tree.
type Transformer interface {
	// Transform processes the tree and returns the result.
	// The returned tree may be the same instance (modified in place)
	// or a completely new tree.
	Transform(program *ast.Program) (*ast.Program, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Program) (*ast.Program, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(p *ast.Program) (*ast.Program, error) {
	return f(p)
}

// Chain returns a Transformer applying each transformer in order.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
		var err error
		for _, t := range transformers {
			if p, err = t.Transform(p); err != nil {
				return nil, err
			}
		}
		return p, nil
	})
}
