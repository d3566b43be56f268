/*
Package x3f reads the structure of SIGMA X3F RAW container files: the file
header, the footer-referenced directory, and zero-copy views over each
entry's payload (property lists, CAMF camera metadata, image planes).

Pixel decoding, decompression, and color management are out of scope; the
views label borrowed byte slices so downstream codecs know what they hold.

# Quick Start

Open a file and list its directory:

	r, err := x3f.Open("SDIM0001.X3F", x3f.ParseOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	defer r.Close()

	it := r.Entries()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
	    fmt.Printf("%s  offset=%d length=%d\n", e.Tag(), e.Offset, e.Length)
	}

Read the camera's property list:

	lists, err := r.PropertyLists()
	for _, pl := range lists {
	    pairs := pl.Pairs()
	    for p, ok := pairs.Next(); ok; p, ok = pairs.Next() {
	        name, value, _ := x3f.DecodeProperty(p)
	        fmt.Printf("%s = %s\n", name, value)
	    }
	}

# Incremental Parsing

Callers that stream bytes (network fetches, partial reads) use the Driver,
which performs no I/O itself:

	d, err := x3f.NewDriver(totalSize, x3f.ParseOptions{})
	var buf []byte
	for {
	    p, err := d.Feed(buf)
	    if err != nil || p.Done {
	        break
	    }
	    buf = append(buf, fetch(p.Need)...)
	}

# Safety

All views borrow from the input buffer: nothing is copied, nothing may
outlive the buffer, and the buffer must stay immutable while views are live.
Malformed input never panics; every failure is a typed error, and an error
in one directory entry leaves its siblings parseable.
*/
package x3f
