package retrolcd

import (
	"bytes"
	"encoding/base64"
	"image"
	"io/ioutil"
	"log"
	"time"
)

// Stage is a step of the conversion pipeline.
type Stage int

// Pipeline stages in the order they run.
const (
	StageValidating Stage = iota
	StageDecoding
	StageResampling
	StageToning
	StageQuantizing
	StageFiltering
	StageEncoding
	StageDone
	StageFailed
)

var stageNames = []string{"validating", "decoding", "resampling", "toning",
	"quantizing", "filtering", "encoding", "done", "failed"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "stage(?)"
	}
	return stageNames[s]
}

// Result is a finished conversion.
type Result struct {
	PNG    []byte
	Image  *image.NRGBA
	Device DeviceProfile

	// SourceWidth and SourceHeight are the decoded image size, Width and
	// Height the size after resampling.
	SourceWidth, SourceHeight int
	Width, Height             int
}

// Converter runs conversions. It holds no per-conversion state and is safe
// for concurrent use.
type Converter struct {
	logger *log.Logger
}

// New returns a converter logging to logger, or nowhere if logger is nil.
func New(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{logger: logger}
}

// pipeline is the state of one conversion.
type pipeline struct {
	c     *Converter
	req   Request
	stage Stage
	start time.Time
	mark  time.Time
}

func (p *pipeline) enter(s Stage) {
	now := time.Now()
	if p.stage != s {
		p.c.logger.Printf("retrolcd: %s took %v", p.stage, now.Sub(p.mark))
	}
	p.stage, p.mark = s, now
}

func (p *pipeline) fail(err error) error {
	err = withStage(err, p.stage.String())
	p.c.logger.Printf("retrolcd: %s: %v", StageFailed, err)
	p.stage = StageFailed
	return err
}

// Convert decodes data and renders it as requested, returning the PNG.
func (c *Converter) Convert(data []byte, req Request) (*Result, error) {
	now := time.Now()
	p := &pipeline{c: c, req: req, stage: StageValidating, start: now, mark: now}

	if err := req.validate(); err != nil {
		return nil, p.fail(err)
	}

	p.enter(StageDecoding)
	if err := checkSize(data, req); err != nil {
		return nil, p.fail(err)
	}
	src, err := Decode(data)
	if err != nil {
		return nil, p.fail(err)
	}

	res := &Result{
		SourceWidth:  src.Bounds().Dx(),
		SourceHeight: src.Bounds().Dy(),
	}

	img := src
	if req.Resample != nil {
		p.enter(StageResampling)
		img, err = Resample(src, *req.Resample)
		if err != nil {
			return nil, p.fail(err)
		}
	}

	frame := toNRGBA(img)
	res.Width, res.Height = frame.Rect.Dx(), frame.Rect.Dy()
	res.Device = LookupDevice(res.Width, res.Height)

	out, err := p.render(frame, res.Device)
	if err != nil {
		return nil, p.fail(err)
	}
	res.Image = out

	p.enter(StageEncoding)
	res.PNG, err = EncodePNG(out)
	if err != nil {
		return nil, p.fail(err)
	}

	p.enter(StageDone)
	c.logger.Printf("retrolcd: converted %dx%d %s to %dx%d %s in %v",
		res.SourceWidth, res.SourceHeight, res.Device.Name,
		out.Rect.Dx(), out.Rect.Dy(), req.Mode, time.Since(p.start))

	return res, nil
}

// checkSize rejects images whose header declares a size too large to decode
// or to render, before any pixels are decoded. Headers that cannot be read
// are left for Decode to report.
func checkSize(data []byte, req Request) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}

	w, h := cfg.Width, cfg.Height
	if int64(w)*int64(h) > MaxSourcePixels {
		return invalidParameter("source size %dx%d exceeds %d pixels", w, h, MaxSourcePixels)
	}

	if exifOrientation(data) >= 5 {
		w, h = h, w
	}
	if req.Resample != nil {
		w, h = resampledSize(w, h, *req.Resample)
	}
	return outputSize(renderedSize(w, h, req))
}

// renderedSize returns the size a w×h frame renders at.
func renderedSize(w, h int, req Request) (int, int) {
	if _, ok := req.Mode.(CRT); ok {
		return crtSize(w, h, req.Scale, req.Aspect.resolve(LookupDevice(w, h)))
	}
	return w * req.Scale, h * req.Scale
}

func (p *pipeline) render(frame *image.NRGBA, device DeviceProfile) (*image.NRGBA, error) {
	req := p.req

	switch m := req.Mode.(type) {
	case Monochrome, MonochromeCustom:
		spec, _, err := resolveMono(m)
		if err != nil {
			return nil, err
		}

		l := lightnessPlane(frame)
		if !req.Tone.neutral() {
			p.enter(StageToning)
			l = applyTone(l, req.Tone)
		}

		p.enter(StageQuantizing)
		q := quantizeMono(l, spec, req.Tone.Dither)

		p.enter(StageFiltering)
		if spec.flat {
			return renderMonoFlat(q, req.Scale)
		}
		return renderMonoLCD(q, req.Scale)

	case LCD:
		p.enter(StageQuantizing)
		corrected := quantizeLCD(frame, m)

		p.enter(StageFiltering)
		return renderLCD(corrected, m.Screen, m.Style, req.Scale)

	case CRT:
		p.enter(StageFiltering)
		return renderCRT(linearize(frame), req.Scale, req.Aspect.resolve(device))
	}

	return nil, invalidMode("unsupported color mode %T", req.Mode)
}

// ConvertBase64 is Convert returning the PNG as base64.
func (c *Converter) ConvertBase64(data []byte, req Request) (string, error) {
	res, err := c.Convert(data, req)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(res.PNG), nil
}
