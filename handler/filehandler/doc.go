// Package filehandler provides a handler that writes one log file per
// period, named by a strftime pattern such as "%Y-%m-%d.log".
//
// The file is opened for append, written and closed for every line
// while the handler mutex is held. Nothing stays open between writes,
// so external log rotation or deletion never leaves the handler writing
// to an unlinked descriptor.
//
// When the rendered name changes the handler prunes the directory,
// keeping the newest Keep files whose names match the pattern.
package filehandler
