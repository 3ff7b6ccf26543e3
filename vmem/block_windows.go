//go:build windows

package vmem

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// defaultGranularity is used if GetSystemInfo reports no granularity.
const defaultGranularity = 64 << 10

var procGetSystemInfo = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetSystemInfo")

// systemInfo mirrors the Win32 SYSTEM_INFO structure.
type systemInfo struct {
	processorArchitecture     uint16
	reserved                  uint16
	pageSize                  uint32
	minimumApplicationAddress uintptr
	maximumApplicationAddress uintptr
	activeProcessorMask       uintptr
	numberOfProcessors        uint32
	processorType             uint32
	allocationGranularity     uint32
	processorLevel            uint16
	processorRevision         uint16
}

var granularity = sync.OnceValue(func() int {
	var info systemInfo
	if procGetSystemInfo.Find() != nil {
		return defaultGranularity
	}
	procGetSystemInfo.Call(uintptr(unsafe.Pointer(&info)))
	if info.allocationGranularity == 0 {
		return defaultGranularity
	}
	return int(info.allocationGranularity)
})

func reserveRegion(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func commitRegion(b []byte) error {
	_, err := windows.VirtualAlloc(addressOf(b), uintptr(len(b)), windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

func decommitRegion(b []byte) error {
	return windows.VirtualFree(addressOf(b), uintptr(len(b)), windows.MEM_DECOMMIT)
}

func releaseRegion(b []byte) error {
	return windows.VirtualFree(addressOf(b), 0, windows.MEM_RELEASE)
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
