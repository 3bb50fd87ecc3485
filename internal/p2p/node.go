// Package p2p implements the libp2p-based root-gossip layer: a best-effort
// broadcast of root_current advances so waiting provers/relayers can detect
// staleness before submitting a proof (SPEC_FULL.md §12). It is purely a
// convenience layer; the engine's correctness per spec §5/§8 never depends
// on a message arriving, adapted from the teacher's block/tx gossip node
// (internal/p2p/node.go) repurposed to a single root-advance topic.
package p2p

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"

	"github.com/ccoin/shieldpool/pkg/types"
)

// RootTopic is the pubsub topic root advances are published to.
const RootTopic = "shieldpool/roots/v1"

// RootAdvance is the message PublishRoot gossips to announce a new root.
// Nothing in the engine or the daemon publishes one when the root changes;
// a caller must invoke PublishRoot itself.
type RootAdvance struct {
	Root      types.Hash
	NextIndex uint64
	At        time.Time
}

// Node is a minimal P2P node carrying only the root-gossip topic; it
// intentionally drops the teacher's DHT/mDNS peer-discovery machinery (see
// DESIGN.md). It has no bootstrap-peer setting and never dials out; peers
// reach it only by connecting to its listen addresses.
type Node struct {
	mu sync.RWMutex

	host   host.Host
	pubsub *pubsub.PubSub

	rootTopic *pubsub.Topic
	rootSub   *pubsub.Subscription

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds P2P node configuration.
type Config struct {
	ListenAddrs []string
	PrivateKey  crypto.PrivKey
}

// DefaultConfig returns default P2P configuration.
func DefaultConfig() *Config {
	return &Config{
		ListenAddrs: []string{"/ip4/0.0.0.0/tcp/9000"},
	}
}

// NewNode creates a node and joins the root-gossip topic.
func NewNode(ctx context.Context, cfg *Config) (*Node, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	nodeCtx, cancel := context.WithCancel(ctx)

	privKey := cfg.PrivateKey
	if privKey == nil {
		var err error
		privKey, _, err = crypto.GenerateKeyPairWithReader(crypto.Ed25519, -1, rand.Reader)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("generate key: %w", err)
		}
	}

	listenAddrs := make([]multiaddr.Multiaddr, len(cfg.ListenAddrs))
	for i, addr := range cfg.ListenAddrs {
		ma, err := multiaddr.NewMultiaddr(addr)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("parse listen addr %q: %w", addr, err)
		}
		listenAddrs[i] = ma
	}

	h, err := libp2p.New(
		libp2p.Identity(privKey),
		libp2p.ListenAddrs(listenAddrs...),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create host: %w", err)
	}

	ps, err := pubsub.NewGossipSub(nodeCtx, h)
	if err != nil {
		cancel()
		h.Close()
		return nil, fmt.Errorf("create pubsub: %w", err)
	}

	topic, err := ps.Join(RootTopic)
	if err != nil {
		cancel()
		h.Close()
		return nil, fmt.Errorf("join root topic: %w", err)
	}

	sub, err := topic.Subscribe()
	if err != nil {
		cancel()
		h.Close()
		return nil, fmt.Errorf("subscribe root topic: %w", err)
	}

	return &Node{
		host:      h,
		pubsub:    ps,
		rootTopic: topic,
		rootSub:   sub,
		ctx:       nodeCtx,
		cancel:    cancel,
	}, nil
}

// PublishRoot broadcasts a root advance to peers. Best-effort: callers must
// not treat delivery as part of the engine's correctness contract.
func (n *Node) PublishRoot(ctx context.Context, adv RootAdvance) error {
	data := encodeRootAdvance(adv)
	return n.rootTopic.Publish(ctx, data)
}

// RootHandler is invoked for every received RootAdvance.
type RootHandler func(from peer.ID, adv RootAdvance)

// ListenRoots runs until ctx is cancelled, invoking handler for each message.
func (n *Node) ListenRoots(ctx context.Context, handler RootHandler) {
	for {
		msg, err := n.rootSub.Next(ctx)
		if err != nil {
			return
		}
		adv, ok := decodeRootAdvance(msg.Data)
		if !ok {
			continue
		}
		handler(msg.ReceivedFrom, adv)
	}
}

// Close tears down the node.
func (n *Node) Close() error {
	n.cancel()
	n.rootSub.Cancel()
	return n.host.Close()
}

// ID returns this node's peer ID.
func (n *Node) ID() peer.ID {
	return n.host.ID()
}

func encodeRootAdvance(adv RootAdvance) []byte {
	buf := make([]byte, 32+8)
	copy(buf[0:32], adv.Root[:])
	ni := adv.NextIndex
	for i := 0; i < 8; i++ {
		buf[32+7-i] = byte(ni)
		ni >>= 8
	}
	return buf
}

func decodeRootAdvance(b []byte) (RootAdvance, bool) {
	if len(b) != 40 {
		return RootAdvance{}, false
	}
	var adv RootAdvance
	adv.Root = types.HashFromBytes(b[0:32])
	var ni uint64
	for i := 0; i < 8; i++ {
		ni = (ni << 8) | uint64(b[32+i])
	}
	adv.NextIndex = ni
	adv.At = time.Now()
	return adv, true
}
