// Package uploader validates and places files received in an HTTP multipart upload.
//
// An Uploader is created per request. It pulls file handles from a Source,
// checks each genuine file against a RuleSet through a Validator, and then
// moves accepted files into a destination directory, optionally renaming them.
//
// Rules:
//
//   - size: maximum size ("2M", "512K", 1024) or a map with "min"/"max" keys
//   - extension: allowed extensions, a list or a comma-separated string
//   - mimetype: allowed MIME types detected from content, with "type/*" wildcards
//   - required: non-empty files; a list names form fields that must carry a file
//   - callback: func(File) error, func(File) bool or CheckFunc
//   - directory: an existing writable destination
//   - dynamic: a destination created on demand
//   - hash: content digest name ("md5", "sha1", "sha256", "xxhash"), a literal
//     base name, or func() string
//   - name: a literal base name, sanitized
//   - sanitize: re-sanitize the final filename
//
// Basic Usage:
//
//	up := uploader.New(uploader.FromRequest(r, 0), uploader.WithRules(map[string]any{
//		"size":      "2M",
//		"extension": []string{"jpg", "png"},
//		"hash":      "md5",
//		"directory": "/var/uploads",
//	}))
//
//	if !up.IsValid() {
//		return up.Errors()
//	}
//	placements := up.Move(r.Context())
//
// Logging goes through log/slog. Pass a configured logger, or logger.NewNope
// to silence it:
//
//	log := logger.New(logger.WithJSONFormatter(), logger.WithLevel(slog.LevelInfo))
//	up := uploader.New(src, uploader.WithLogger(log))
//
// Custom checks are registered by name and dispatched by exact match:
//
//	up := uploader.New(src, uploader.WithCheck("maxfiles", func(f uploader.File, rule uploader.Rule) error {
//		// ...
//		return nil
//	}))
//
// Rules without a registered check are reported by Warnings, move failures by
// Failures. Neither stops processing of the remaining files. Truncate removes
// everything placed so far.
package uploader
