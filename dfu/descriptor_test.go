package dfu

import (
	"errors"
	"testing"
)

func TestParseFunctionalDescriptor(t *testing.T) {
	fd, err := ParseFunctionalDescriptor(simDescriptor())
	if err != nil {
		t.Fatal(err)
	}
	if fd.Attributes != 0x0d {
		t.Fatal("attributes misread:", fd.Attributes)
	}
	if fd.DetachTimeout != 255 {
		t.Fatal("detach timeout misread:", fd.DetachTimeout)
	}
	if fd.TransferSize != 1024 {
		t.Fatal("transfer size misread:", fd.TransferSize)
	}
	if fd.Version != 0x0110 {
		t.Fatal("version misread:", fd.Version)
	}
	if !fd.WillDetach() {
		t.Fatal("will-detach bit lost")
	}
}

func TestParseFunctionalDescriptorMissing(t *testing.T) {
	if _, err := ParseFunctionalDescriptor(nil); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatal("expected invalid descriptor for missing bytes, got", err)
	}
}

func TestParseFunctionalDescriptorShort(t *testing.T) {
	raw := simDescriptor()[:8]
	if _, err := ParseFunctionalDescriptor(raw); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatal("expected invalid descriptor for short bytes, got", err)
	}
}

func TestParseFunctionalDescriptorWrongType(t *testing.T) {
	raw := simDescriptor()
	raw[1] = 0x04
	if _, err := ParseFunctionalDescriptor(raw); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatal("expected invalid descriptor for wrong type, got", err)
	}
}
