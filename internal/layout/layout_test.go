package layout

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nkgpu/toolkit"
)

func TestVerify(t *testing.T) {
	if err := Verify(); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
}

func TestToolkitAndPipelineOffsetsAgree(t *testing.T) {
	elems := Elements()
	attrs := Attributes()
	if len(elems) != len(attrs) {
		t.Fatalf("len(Elements)=%d len(Attributes)=%d", len(elems), len(attrs))
	}
	for i := range elems {
		if uint64(elems[i].Offset) != attrs[i].Offset {
			t.Errorf("attribute %s: toolkit offset %d, pipeline offset %d",
				elems[i].Attribute, elems[i].Offset, attrs[i].Offset)
		}
	}
}

func TestVertexConstants(t *testing.T) {
	if VertexSize() != Size {
		t.Errorf("VertexSize() = %d, want %d", VertexSize(), Size)
	}
	if VertexAlignment() != Alignment {
		t.Errorf("VertexAlignment() = %d, want %d", VertexAlignment(), Alignment)
	}
	attrs := Attributes()
	wantFormats := []gputypes.VertexFormat{
		gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatUint32,
	}
	for i, a := range attrs {
		if a.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d location = %d", i, a.ShaderLocation)
		}
		if a.Format != wantFormats[i] {
			t.Errorf("attribute %d format = %v, want %v", i, a.Format, wantFormats[i])
		}
	}
}

func TestBufferLayouts(t *testing.T) {
	bl := BufferLayouts()
	if len(bl) != 1 {
		t.Fatalf("got %d buffer layouts, want 1", len(bl))
	}
	if bl[0].ArrayStride != Size {
		t.Errorf("ArrayStride = %d, want %d", bl[0].ArrayStride, Size)
	}
	if bl[0].StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v", bl[0].StepMode)
	}
}

func TestConvertConfigIsValid(t *testing.T) {
	cfg := ConvertConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("layout convert config invalid: %v", err)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	elems := Elements()
	attrs := Attributes()
	attrs[2].Offset = 12
	if err := verify(elems, attrs, Size, Alignment); !errors.Is(err, ErrMismatch) {
		t.Errorf("offset mismatch: got %v, want ErrMismatch", err)
	}

	if err := verify(Elements(), Attributes(), 24, Alignment); !errors.Is(err, ErrMismatch) {
		t.Errorf("size mismatch: got %v, want ErrMismatch", err)
	}

	short := Elements()[:2]
	if err := verify(short, Attributes(), Size, Alignment); !errors.Is(err, ErrMismatch) {
		t.Errorf("count mismatch: got %v, want ErrMismatch", err)
	}

	moved := Elements()
	moved[0].Attribute = toolkit.VertexColor
	if err := verify(moved, Attributes(), Size, Alignment); !errors.Is(err, ErrMismatch) {
		t.Errorf("attribute at wrong offset: got %v, want ErrMismatch", err)
	}
}
