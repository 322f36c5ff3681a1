package syntax

import (
	stderrors "errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/op"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	program := &ast.Program{Stmts: []ast.Stmt{
		&ast.ExprStmt{X: &ast.Call{Fun: &ast.Ident{Name: "wait_vblank"}}},
	}}
	NewStructure(DefaultCollector()).Bootstrap(program)
	require.Len(t, program.Stmts, 3)
	require.Equal(t, "from pynes.asm import *", program.Stmts[0].String())
	require.Equal(t, "game = pynes.game.Game()", program.Stmts[1].String())
	require.Equal(t, "wait_vblank()", program.Stmts[2].String())
}

func TestWrapChunksPreservesOrder(t *testing.T) {
	asm := &ast.Asm{Items: []ast.Item{
		ast.Instr(op.LoadAccumulator), ast.Arg(&ast.Int{Value: 1}),
		ast.Instr(op.StoreAccumulator), ast.Arg(&ast.Ident{Name: "x"}),
	}}
	fn := &ast.Func{Name: &ast.Ident{Name: "reset"}}
	program := &ast.Program{Stmts: []ast.Stmt{
		&ast.Import{Module: "pynes.bitbag", Names: []ast.ImportSpec{{Name: "*"}}},
		&ast.ExprStmt{X: &ast.Call{Fun: &ast.Ident{Name: "wait_vblank"}}},
		fn,
		asm,
		&ast.ExprStmt{X: &ast.Call{Fun: &ast.Ident{Name: "clear_sprites"}}},
	}}
	count := NewStructure(DefaultCollector()).WrapChunks(program)
	require.Equal(t, 3, count)
	require.Equal(t, "from pynes.bitbag import *", program.Stmts[0].String())
	require.Equal(t, "game.add_chunk(wait_vblank())", program.Stmts[1].String())
	require.Same(t, fn, program.Stmts[2])
	require.Equal(t, "game.add_chunk(LDA 1\nSTA x)", program.Stmts[3].String())
	require.Equal(t, "game.add_chunk(clear_sprites())", program.Stmts[4].String())

	call := program.Stmts[3].(*ast.ExprStmt).X.(*ast.Call)
	require.Same(t, asm, call.Args[0])
}

func TestImportRecordsOrigins(t *testing.T) {
	s := NewStructure(DefaultCollector())
	imp := &ast.Import{Module: "pynes.bitbag", Names: []ast.ImportSpec{
		{Name: "load_sprite"},
		{Name: "wait_vblank", Alias: "vb"},
	}}
	require.Same(t, imp, s.Import(imp))

	origin, ok := s.Lookup().Origin("load_sprite")
	require.True(t, ok)
	require.Equal(t, "pynes.bitbag.load_sprite", origin)
	origin, ok = s.Lookup().Origin("vb")
	require.True(t, ok)
	require.Equal(t, "pynes.bitbag.wait_vblank", origin)
	_, ok = s.Lookup().Origin("wait_vblank")
	require.False(t, ok)
	require.Equal(t, []string{"load_sprite", "vb"}, s.Lookup().Aliases())
}

func TestFuncHook(t *testing.T) {
	s := NewStructure(DefaultCollector())
	fn := &ast.Func{
		Name:  &ast.Ident{Name: "nmi"},
		Hooks: []ast.Expr{&ast.Ident{Name: "inline"}},
	}
	s.Func(fn)
	require.Len(t, fn.Hooks, 2)
	require.Equal(t, "game.function", fn.Hooks[0].String())
	require.Equal(t, "inline", fn.Hooks[1].String())
}

func TestReferenceSkipsReservedOrigin(t *testing.T) {
	s := NewStructure(DefaultCollector())
	s.Import(&ast.Import{Module: "pynes.lib", Names: []ast.ImportSpec{{Name: "asm_def"}}})
	s.Import(&ast.Import{Module: "pynes.bitbag", Names: []ast.ImportSpec{{Name: "rs"}}})

	for _, name := range []string{"asm_def", "rs", "x"} {
		require.NoError(t, s.Reference(&ast.Ident{Name: name}))
	}
	require.Equal(t, []string{"rs", "x"}, s.Names().Names())
	require.False(t, s.Names().Has("asm_def"))
}

func TestReferenceUnresolvedImport(t *testing.T) {
	s := NewStructure(DefaultCollector())
	s.Import(&ast.Import{Module: "", Names: []ast.ImportSpec{{Name: "helper"}}})

	// Importing alone is not an error; the reference is.
	require.NoError(t, s.Reference(&ast.Ident{Name: "other"}))
	err := s.Reference(&ast.Ident{Name: "helper"})
	require.True(t, stderrors.Is(err, errors.ErrImportResolution))
	require.False(t, s.Names().Has("helper"))
}

func TestReferenceRejectedByResolver(t *testing.T) {
	known := ModuleResolverFunc(func(module string) bool { return module == "pynes.bitbag" })
	s := NewStructure(DefaultCollector(), WithResolver(known), WithDeferredErrors())
	s.Import(&ast.Import{Module: "pynes.missing", Names: []ast.ImportSpec{{Name: "a"}, {Name: "b"}}})
	s.Import(&ast.Import{Module: "pynes.bitbag", Names: []ast.ImportSpec{{Name: "c"}}})

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Reference(&ast.Ident{Name: name}))
	}
	err := s.Err()
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, stderrors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	require.Equal(t, []string{"c"}, s.Names().Names())
}

func TestReimportResolves(t *testing.T) {
	lookup := NewModuleLookup()
	lookup.RecordUnresolved("x", "")
	lookup.Record("x", "pynes.bitbag.x")
	origin, err := lookup.Resolve("x", noPos())
	require.NoError(t, err)
	require.Equal(t, "pynes.bitbag.x", origin)
	require.Equal(t, 1, lookup.Len())
}
