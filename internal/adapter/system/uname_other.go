//go:build !linux

package system

func kernelRelease() string { return "" }
