package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

var (
	inName                = "vm_test.go"
	out    io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		inName = args[0]
		args = args[1:]
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		args = args[1:]
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		gofmt := exec.CommandContext(ctx, "goimports")
		fmtPipe, err := gofmt.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		gofmt.Stdout = out
		gofmt.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("gofmt run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// run writes a func(vmTestCase) vmTestCase adapter for every expect method
// of vmTestCase, so that layered tests can pass expectations around as
// values, e.g. expectStack becomes expectVMStack.
func run(ctx context.Context) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, inName, nil, 0)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(inName)
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !isExpectMethod(fn) {
			continue
		}
		whatName := strings.TrimPrefix(fn.Name.Name, "expect")

		var params, args []string
		for _, field := range fn.Type.Params.List {
			var typ bytes.Buffer
			if err := printer.Fprint(&typ, fset, field.Type); err != nil {
				return err
			}
			_, variadic := field.Type.(*ast.Ellipsis)
			for _, name := range field.Names {
				params = append(params, name.Name+" "+typ.String())
				if variadic {
					args = append(args, name.Name+"...")
				} else {
					args = append(args, name.Name)
				}
			}
		}

		fmt.Fprintf(&buf, "func expectVM%v(%v) func(vmTestCase) vmTestCase {\n", whatName, strings.Join(params, ", "))
		buf.WriteString("  return func(vmt vmTestCase) vmTestCase {\n")
		fmt.Fprintf(&buf, "    return vmt.%v(%v)\n", fn.Name.Name, strings.Join(args, ", "))
		buf.WriteString("  }\n")
		buf.WriteString("}\n\n")

		if _, err := buf.WriteTo(out); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	_, err = buf.WriteTo(out)
	return err
}

func isExpectMethod(fn *ast.FuncDecl) bool {
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return false
	}
	if recv, ok := fn.Recv.List[0].Type.(*ast.Ident); !ok || recv.Name != "vmTestCase" {
		return false
	}
	if !strings.HasPrefix(fn.Name.Name, "expect") {
		return false
	}
	results := fn.Type.Results
	if results == nil || len(results.List) != 1 {
		return false
	}
	ret, ok := results.List[0].Type.(*ast.Ident)
	return ok && ret.Name == "vmTestCase"
}
