// SPDX-License-Identifier: MIT

// Package checkpoint stores named parameter tensors in protobuf wire format.
//
// The stream is one message, compatible with this schema:
//
//	message Checkpoint {
//	  uint32 version = 2;
//	  repeated Tensor tensors = 1;
//	}
//	message Tensor {
//	  string name = 1;
//	  repeated int64 shape = 2;   // packed
//	  repeated double data = 3;   // packed, row-major
//	}
//
// Files can therefore be inspected with protoc --decode or any protobuf
// runtime. Load checks that the stored names and shapes match the parameter
// registry of the receiving layer exactly.
package checkpoint
