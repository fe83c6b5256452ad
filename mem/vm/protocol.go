// Package vm provides the models for address translations
package vm

import "github.com/AltayOzkan/TLB-Project/sim"

// A Request is one memory access replayed from an input trace.
type Request struct {
	Addr    uint32
	Data    uint32
	IsWrite bool
}

// A Translation describes how a TLB served a request.
type Translation struct {
	// ReqIndex is the position of the request in the replayed trace.
	ReqIndex int
	VAddr    uint32
	PAddr    uint32
	Hit      bool

	// Cycle is the number of cycles elapsed when the translation is reported.
	Cycle uint64
}

// Hook positions at which a TLB reports translations. The hook context
// carries the Request as the Item and a Translation as the Detail.
var (
	// HookPosTLBHit is triggered after a lookup that found the translation.
	HookPosTLBHit = &sim.HookPos{Name: "TLBHit"}

	// HookPosTLBMiss is triggered after the translation of a missed request
	// has been fetched.
	HookPosTLBMiss = &sim.HookPos{Name: "TLBMiss"}

	// HookPosReqRetired is triggered when a request leaves the TLB.
	HookPosReqRetired = &sim.HookPos{Name: "ReqRetired"}
)
