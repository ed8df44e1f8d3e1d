package rpcservice

import (
	"strings"
	"testing"
)

func TestEmbeddedProtoDeclaresExpectedService(t *testing.T) {
	data, err := protoFS.ReadFile("proto/" + protoFile)
	if err != nil {
		t.Fatalf("read embedded proto: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "service Assignability") {
		t.Fatalf("expected the embedded schema to declare the Assignability service")
	}
	if !strings.Contains(text, "rpc Check(AssignRequest) returns (AssignResponse)") {
		t.Fatalf("expected the embedded schema to declare the Check RPC")
	}
}

func TestLoadDescriptorsResolvesCheckMethod(t *testing.T) {
	d, err := LoadDescriptors()
	if err != nil {
		t.Fatalf("LoadDescriptors: %v", err)
	}
	if d.Method.GetName() != methodName {
		t.Fatalf("expected method name %s, got %s", methodName, d.Method.GetName())
	}
	if d.Request.GetFields() == nil || d.Reply.GetFields() == nil {
		t.Fatalf("expected request/reply descriptors to carry fields")
	}
}
