// Package replay encodes and decodes osu! replay (.osr) files.
//
// A replay is a flat record of primitive fields (see package codec)
// followed by an LZMA-compressed block of text frames:
//
//	mode, game version, beatmap hash, username, replay hash,
//	300s, 100s, 50s, gekis, katus, misses, score, max combo, perfect,
//	mods, life bar, timestamp, event block, replay id
//
// # Event Stream
//
// The event block decompresses to comma-terminated records of four
// pipe-separated fields. The meaning of fields 2 to 4 depends on the mode:
//
//	std    delta|x|y|keys
//	taiko  delta|x|0|keys
//	catch  delta|x|0|dashing
//	mania  delta|keys|0|0
//
// A last record with delta -12345 carries the RNG seed in field 4. The
// first two records may be skip frames positioned at (256, -500); both are
// removed on decode and never written back.
//
// # Usage
//
//	c := replay.NewCodec()
//	r, err := c.Decode(data)
//	if err != nil {
//		return err
//	}
//	fmt.Println(r.Username, r.Mods, len(r.Events))
//
//	out, err := c.Encode(r)
//
// Frames returned by the osu! API can be parsed without a full record:
//
//	events, err := replay.ParseReplayData(payload, false, false, replay.ModeStd)
//
// # Error Handling
//
// Errors wrap the sentinels of package codec. Use errors.Is with
// codec.ErrCompression, codec.ErrParse, codec.ErrUnexpectedEOF and so on to
// classify them.
package replay
