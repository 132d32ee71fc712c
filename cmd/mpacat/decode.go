package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"

	"github.com/gen2brain/mpa"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

// decodeFile decodes input and writes the PCM to output. An empty output
// derives a .wav name from the input; with --raw the PCM goes to stdout
// instead.
func decodeFile(input, output string) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	dec := mpa.NewDecoder(in)
	if len(gains) > 0 {
		eq, err := mpa.NewEqualizer(gains)
		if err != nil {
			return err
		}
		dec.SetEqualizer(eq)
	}

	if raw {
		logger.Debug("Writing raw PCM", "input", input)
		_, err = io.Copy(os.Stdout, dec.Reader())

		return err
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".wav"
	}

	return writeWAV(dec, output)
}

// writeWAV drains the decoder into a 16-bit PCM WAV file, one frame per
// encoder write.
func writeWAV(dec *mpa.Decoder, output string) error {
	samples, err := dec.DecodeFrame()
	if err != nil {
		return fmt.Errorf("no decodable audio: %w", err)
	}

	logger.Info("Decoding",
		"layer", dec.Layer(),
		"rate", dec.SampleRate(),
		"channels", dec.Channels(),
		"bitrate", dec.Bitrate()/1000)

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := wav.NewEncoder(out, dec.SampleRate(), 16, dec.Channels(), 1)
	defer enc.Close()

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: dec.Channels(),
			SampleRate:  dec.SampleRate(),
		},
		SourceBitDepth: 16,
	}

	frames := 0
	for {
		buf.Data = buf.Data[:0]
		for _, s := range samples {
			buf.Data = append(buf.Data, int(s))
		}
		if err = enc.Write(buf); err != nil {
			return err
		}
		frames++

		samples, err = dec.DecodeFrame()
		if errors.Is(err, mpa.ErrEndOfStream) {
			break
		}
		if err != nil {
			return err
		}
	}

	if n := dec.CRCErrors(); n > 0 {
		logger.Warn("Skipped frames with CRC errors", "frames", n)
	}
	logger.Info("Done", "frames", frames, "output", output)

	return nil
}

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Print stream parameters without writing audio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		in, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		dec := mpa.NewDecoder(in)

		frames := 0
		samples := 0
		for {
			pcm, err := dec.DecodeFrame()
			if errors.Is(err, mpa.ErrEndOfStream) {
				break
			}
			if err != nil {
				return err
			}

			frames++
			samples += len(pcm) / dec.Channels()
		}
		if frames == 0 {
			return fmt.Errorf("no decodable audio in %s", args[0])
		}

		logger.Info("Stream",
			"layer", dec.Layer(),
			"rate", dec.SampleRate(),
			"channels", dec.Channels(),
			"bitrate", dec.Bitrate()/1000)
		logger.Info("Length",
			"frames", frames,
			"seconds", fmt.Sprintf("%.2f", float64(samples)/float64(dec.SampleRate())))
		if dec.CRCErrors() > 0 || dec.SyncSkips() > 0 {
			logger.Warn("Stream damage",
				"crcErrors", dec.CRCErrors(),
				"syncSkips", dec.SyncSkips())
		}

		return nil
	},
}
