package generate

import (
	"errors"
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

type ortModel struct {
	session  *ort.DynamicAdvancedSession
	withMask bool
}

func openORT(cfg LocalConfig) (logitsModel, textTokenizer, error) {
	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load tokenizer: %w", err)
	}
	if cfg.ORTLibrary != "" {
		ort.SetSharedLibraryPath(cfg.ORTLibrary)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, nil, fmt.Errorf("init onnxruntime: %w", err)
		}
	}
	inputs := []string{cfg.InputIDsName}
	if cfg.AttentionMaskName != "" {
		inputs = append(inputs, cfg.AttentionMaskName)
	}
	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, inputs, []string{cfg.LogitsName}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return &ortModel{session: session, withMask: cfg.AttentionMaskName != ""}, hfTokenizer{tk: tk}, nil
}

func (m *ortModel) NextLogits(ids []int64) ([]float32, error) {
	shape := ort.NewShape(1, int64(len(ids)))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("input ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	inputs := []ort.Value{idsTensor}
	if m.withMask {
		mask := make([]int64, len(ids))
		for i := range mask {
			mask[i] = 1
		}
		maskTensor, err := ort.NewTensor(shape, mask)
		if err != nil {
			return nil, fmt.Errorf("attention mask tensor: %w", err)
		}
		defer maskTensor.Destroy()
		inputs = append(inputs, maskTensor)
	}
	outputs := []ort.Value{nil}
	if err := m.session.Run(inputs, outputs); err != nil {
		return nil, err
	}
	defer outputs[0].Destroy()
	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("logits output is not a float32 tensor")
	}
	dims := logits.GetShape()
	if len(dims) == 0 {
		return nil, errors.New("logits output has no shape")
	}
	vocab := int(dims[len(dims)-1])
	data := logits.GetData()
	if vocab <= 0 || len(data) < vocab {
		return nil, fmt.Errorf("unexpected logits shape %v", dims)
	}
	out := make([]float32, vocab)
	copy(out, data[len(data)-vocab:])
	return out, nil
}

func (m *ortModel) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session = nil
	return err
}

type hfTokenizer struct {
	tk *tokenizer.Tokenizer
}

func (h hfTokenizer) Encode(text string) ([]int, error) {
	enc, err := h.tk.EncodeSingle(text, false)
	if err != nil {
		return nil, err
	}
	return enc.Ids, nil
}

func (h hfTokenizer) Decode(ids []int) string {
	return h.tk.Decode(ids, true)
}
