// Shieldpool CLI - offline helper commands for the shielded pool engine.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/ccoin/shieldpool/internal/engine"
	"github.com/ccoin/shieldpool/internal/note"
	"github.com/ccoin/shieldpool/pkg/types"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("shieldpool-cli v%s\n", version)

	case "help":
		printUsage()

	case "note":
		if len(os.Args) < 3 {
			fmt.Println("Usage: shieldpool-cli note <subcommand>")
			fmt.Println("Subcommands: commitment <secret-hex> <nullifier-hex> <amount>, nullifier <nullifier-hex>")
			os.Exit(1)
		}
		cmdNote(os.Args[2:])

	case "vk":
		if len(os.Args) < 3 {
			fmt.Println("Usage: shieldpool-cli vk checksum <path>")
			os.Exit(1)
		}
		cmdVK(os.Args[2:])

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("shieldpool-cli - offline helper for the shielded pool engine")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version                 print CLI version")
	fmt.Println("  note commitment ...     compute a note commitment C = H(secret, H(nullifier, amount))")
	fmt.Println("  note nullifier ...      compute a nullifier hash N = H(nullifier, 0)")
	fmt.Println("  vk checksum <path>      print the deployment digest of a verifying key file")
}

func cmdNote(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: shieldpool-cli note <commitment|nullifier> ...")
		os.Exit(1)
	}

	switch args[0] {
	case "commitment":
		if len(args) != 4 {
			fmt.Println("Usage: shieldpool-cli note commitment <secret-hex> <nullifier-hex> <amount>")
			os.Exit(1)
		}
		secret := mustHashFromHex(args[1])
		nullifierVal := mustHashFromHex(args[2])
		amount, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid amount: %v\n", err)
			os.Exit(1)
		}
		c, err := note.Commitment(note.Note{Secret: secret, Nullifier: nullifierVal, Amount: amount})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hex.EncodeToString(c[:]))

	case "nullifier":
		if len(args) != 2 {
			fmt.Println("Usage: shieldpool-cli note nullifier <nullifier-hex>")
			os.Exit(1)
		}
		n, err := note.NullifierHash(mustHashFromHex(args[1]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hex.EncodeToString(n[:]))

	default:
		fmt.Printf("Unknown note subcommand: %s\n", args[0])
		os.Exit(1)
	}
}

func cmdVK(args []string) {
	if args[0] != "checksum" || len(args) != 2 {
		fmt.Println("Usage: shieldpool-cli vk checksum <path>")
		os.Exit(1)
	}
	raw, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read vk: %v\n", err)
		os.Exit(1)
	}
	digest := engine.VerifyingKeyChecksum(raw)
	fmt.Println(hex.EncodeToString(digest[:]))
}

func mustHashFromHex(s string) types.Hash {
	b, err := hex.DecodeString(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid hex: %v\n", err)
		os.Exit(1)
	}
	return types.HashFromBytes(b)
}
