// Command holtburger-dat inspects a DAT archive: it lists the resource
// ids a file holds, dumps a weenie template's property bag, summarizes a
// landblock's terrain and static objects, or extracts a raw (decompressed)
// blob to disk.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/holtburger/holtburger/internal/archive"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "list":
		runList(os.Args[2:])
	case "weenie":
		runWeenie(os.Args[2:])
	case "landblock":
		runLandblock(os.Args[2:])
	case "extract":
		runExtract(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: holtburger-dat <list|weenie|landblock|extract> -dat <path> [options]")
}

func openDat(fs *flag.FlagSet, datPath *string) *archive.Database {
	if *datPath == "" {
		fmt.Fprintf(os.Stderr, "-dat is required for %q\n", fs.Name())
		os.Exit(2)
	}
	db, err := archive.Open(*datPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", *datPath, err)
		os.Exit(1)
	}
	return db
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	datPath := fs.String("dat", "", "path to a portal.dat or cell.dat file")
	typeFilter := fs.String("type", "", "only list entries of this FileType (by display name substring)")
	fs.Parse(args)

	db := openDat(fs, datPath)
	for id, entry := range db.Files {
		ft := entry.FileType()
		if *typeFilter != "" && !strings.Contains(ft.String(), *typeFilter) {
			continue
		}
		fmt.Printf("%08X  %-24s  size=%d  compressed=%v\n", id, ft, entry.Size, entry.IsCompressed())
	}
}

func runWeenie(args []string) {
	fs := flag.NewFlagSet("weenie", flag.ExitOnError)
	datPath := fs.String("dat", "", "path to a portal.dat file")
	cachePath := fs.String("cache", "", "optional bbolt blob cache path")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: holtburger-dat weenie -dat <path> <wcid hex>")
		os.Exit(2)
	}
	wcid := parseID(rest[0])

	db := openDat(fs, datPath)
	blob := fetchBlob(db, *cachePath, wcid)

	w, err := archive.UnpackWeenie(blob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unpacking weenie %08X: %v\n", wcid, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(w)
}

func runLandblock(args []string) {
	fs := flag.NewFlagSet("landblock", flag.ExitOnError)
	datPath := fs.String("dat", "", "path to a cell.dat file")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: holtburger-dat landblock -dat <path> <landblock id hex>")
		os.Exit(2)
	}
	base := parseID(rest[0]) &^ 0xFFFF

	db := openDat(fs, datPath)

	terrainBlob, err := db.GetFile(base | 0xFFFF)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading terrain for %08X: %v\n", base, err)
		os.Exit(1)
	}
	terrain, err := archive.UnpackCellLandblock(terrainBlob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unpacking terrain for %08X: %v\n", base, err)
		os.Exit(1)
	}
	fmt.Printf("landblock %08X: hasObjects=%v centerHeight=%.1f\n", terrain.ID, terrain.HasObjects, terrain.GetHeight(4, 4))

	if !terrain.HasObjects {
		return
	}
	infoBlob, err := db.GetFile(base | 0xFFFE)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading static objects for %08X: %v\n", base, err)
		os.Exit(1)
	}
	info, err := archive.UnpackLandblockInfo(infoBlob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unpacking static objects for %08X: %v\n", base, err)
		os.Exit(1)
	}
	fmt.Printf("  %d static object(s), %d building(s)\n", len(info.Objects), len(info.Buildings))
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	datPath := fs.String("dat", "", "path to a dat file")
	outPath := fs.String("out", "", "output file path (defaults to stdout)")
	cachePath := fs.String("cache", "", "optional bbolt blob cache path")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: holtburger-dat extract -dat <path> [-out <path>] <id hex>")
		os.Exit(2)
	}
	id := parseID(rest[0])

	db := openDat(fs, datPath)
	blob := fetchBlob(db, *cachePath, id)

	if *outPath == "" {
		os.Stdout.Write(blob)
		return
	}
	if err := os.WriteFile(*outPath, blob, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}
}

func fetchBlob(db *archive.Database, cachePath string, id uint32) []byte {
	var cache *archive.Cache
	if cachePath != "" {
		c, err := archive.OpenCache(cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening cache: %v\n", err)
			os.Exit(1)
		}
		defer c.Close()
		cache = c
	}
	blob, err := db.GetFileCached(cache, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %08X: %v\n", id, err)
		os.Exit(1)
	}
	return blob
}

func parseID(s string) uint32 {
	var id uint32
	if _, err := fmt.Sscanf(s, "%x", &id); err != nil {
		fmt.Fprintf(os.Stderr, "invalid hex id %q: %v\n", s, err)
		os.Exit(2)
	}
	return id
}
