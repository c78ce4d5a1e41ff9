package gmlscene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestSimpleEval exercises the evaluator's stack/closure machinery in
// isolation, with no render call: apply and variable rebinding.
func TestSimpleEval(t *testing.T) {
	type testCase struct {
		name    string
		program string
		want    Value // expected top of stack
	}
	for _, tt := range []testCase{
		{
			name:    "apply",
			program: "1 { /x x x } apply addi",
			want:    VInt(2),
		},
		{
			name: "rebind",
			program: `
				1 /x           % bind x to 1
				{ x } /f       % the function f pushes the value of x
				2 /x           % rebind x to 2
				f apply x addi`,
			want: VInt(3),
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewParser(tt.program).Parse()
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			st := NewEvalState()
			if err := st.Eval(tokens); err != nil {
				t.Fatalf("eval error: %v", err)
			}
			var got Value
			if len(st.Stack) > 0 {
				got = st.Stack[len(st.Stack)-1]
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("Eval() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

// TestEvalTestdataScene checks that the render builtin fires exactly
// once for the package's testdataScene program, handing the callback
// RenderArgs that carry the light list, output file, depth, a built
// camera.Camera, and a scene node that flattens to the two shapes.
func TestEvalTestdataScene(t *testing.T) {
	tokens, err := NewParser(testdataScene).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var got *RenderArgs
	st := NewEvalState()
	st.Render = func(args *RenderArgs) error {
		if got != nil {
			t.Fatalf("multiple render calls: %v", args)
		}
		got = args
		return nil
	}
	if err := st.Eval(tokens); err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got == nil {
		t.Fatal("render was never called")
	}
	if len(got.Lights) != 1 {
		t.Errorf("len(Lights) = %d, want 1", len(got.Lights))
	}
	if got.File != "scene.png" {
		t.Errorf("File = %q, want scene.png", got.File)
	}
	if got.Depth != 5 {
		t.Errorf("Depth = %d, want 5", got.Depth)
	}
	if got.Camera == nil {
		t.Fatal("Camera is nil")
	}
	if got.Camera.HSize != 11 || got.Camera.VSize != 11 {
		t.Errorf("Camera size = %dx%d, want 11x11", got.Camera.HSize, got.Camera.VSize)
	}
	if got.Scene == nil {
		t.Fatal("Scene is nil")
	}
	objects := got.Scene.Flatten()
	if len(objects) != 2 {
		t.Errorf("len(Flatten()) = %d, want 2 (ball, floor)", len(objects))
	}
}

func BenchmarkParseAndEvalTestdataScene(b *testing.B) {
	for b.Loop() {
		tokens, err := NewParser(testdataScene).Parse()
		if err != nil {
			b.Fatalf("parse error: %v", err)
		}
		st := NewEvalState()
		st.Render = func(args *RenderArgs) error { return nil }
		if err := st.Eval(tokens); err != nil {
			b.Fatalf("eval error: %v", err)
		}
	}
}

func BenchmarkParseTestdataScene(b *testing.B) {
	for b.Loop() {
		if _, err := NewParser(testdataScene).Parse(); err != nil {
			b.Fatalf("parse error: %v", err)
		}
	}
}
