package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

const showCommand = "show"

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve handles requests from later launches until the guard is released.
// onShow runs on the accept goroutine.
func (guard *InstanceGuard) Serve(onShow func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	go func() {
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				return
			}
			guard.handle(conn, onShow)
		}
	}()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// NotifyRunningInstance asks the instance holding the lock to show itself.
func NotifyRunningInstance(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("contact running instance: %w", err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, showCommand); err != nil {
		return fmt.Errorf("send show request: %w", err)
	}
	return nil
}

func (guard *InstanceGuard) handle(conn net.Conn, onShow func()) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return
	}
	if strings.TrimSpace(line) == showCommand && onShow != nil {
		onShow()
	}
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
