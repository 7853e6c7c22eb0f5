package main

import (
	"context"
	"io"
	"log"

	"github.com/hajimehoshi/oto"

	"polysynth/src/synth"
)

// player streams the engine to the sound card. It implements io.Reader:
// every Read renders one batch of mono float64 samples and expands them to
// interleaved 16-bit stereo for oto.
type player struct {
	engine     *synth.Engine
	otoContext *oto.Context
	ctx        context.Context
	out        []float64
}

func newPlayer(engine *synth.Engine) (*player, error) {
	otoContext, err := oto.NewContext(int(engine.SampleRate()), channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, err
	}
	return &player{
		engine:     engine,
		otoContext: otoContext,
		ctx:        context.Background(),
		out:        make([]float64, samplesPerCycle),
	}, nil
}

func (p *player) Read(buf []byte) (int, error) {
	select {
	case <-p.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	samples := len(buf) / bytesPerSample
	if samples > len(p.out) {
		samples = len(p.out)
	}
	out := p.out[:samples]
	p.engine.Render(out)
	for i, value := range out {
		if value > 1 {
			value = 1
		} else if value < -1 {
			value = -1
		}
		b := int16(value * 32767)
		for ch := 0; ch < channelNum; ch++ {
			buf[bytesPerSample*i+2*ch] = byte(b)
			buf[bytesPerSample*i+2*ch+1] = byte(b >> 8)
		}
	}
	return samples * bytesPerSample, nil
}

// Play blocks until ctx is canceled.
func (p *player) Play(ctx context.Context) error {
	player := p.otoContext.NewPlayer()
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	p.ctx = ctx
	if _, err := io.CopyBuffer(player, p, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	log.Println("Play() ended.")
	return nil
}

func (p *player) Close() error {
	return p.otoContext.Close()
}
