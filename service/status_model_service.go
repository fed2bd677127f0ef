package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"ci-computer-dashboard/models"
)

// StatusFeatures are the columns used to predict the install status
var StatusFeatures = []string{models.ColumnLocation, models.ColumnBuildMachineUse}

// ErrNotEnoughData is returned when too few labelled rows remain to train
var ErrNotEnoughData = errors.New("not enough labelled rows to train")

// TrainOptions controls the gradient descent fit
type TrainOptions struct {
	Epochs       int
	LearningRate float64
	TestFraction float64
	Seed         int64
}

// DefaultTrainOptions returns the settings used by the CLI and the /tflow/ page
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{Epochs: 20, LearningRate: 0.5, TestFraction: 0.2, Seed: 42}
}

// StatusModelService fits an exploratory install status classifier on the asset dataset
type StatusModelService struct {
	dashboard DashboardServiceInterface
	opts      TrainOptions
}

// NewStatusModelService creates a new StatusModelService
func NewStatusModelService(dashboard DashboardServiceInterface, opts TrainOptions) *StatusModelService {
	return &StatusModelService{dashboard: dashboard, opts: opts}
}

// Ensure StatusModelService implements StatusModelServiceInterface
var _ StatusModelServiceInterface = (*StatusModelService)(nil)

// Train loads the dataset and fits the classifier
func (s *StatusModelService) Train(ctx context.Context) (*models.TrainingReport, error) {
	table, err := s.dashboard.LoadAssets(ctx)
	if err != nil {
		return nil, err
	}
	return TrainStatusModel(table.Records, s.opts)
}

// TrainStatusModel fits a multinomial logistic regression of install_status on the
// label-encoded, standardized features. Rows missing a feature or the target are dropped.
func TrainStatusModel(records []models.AssetRecord, opts TrainOptions) (*models.TrainingReport, error) {
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultTrainOptions().Epochs
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultTrainOptions().LearningRate
	}
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		opts.TestFraction = DefaultTrainOptions().TestFraction
	}

	var features [][]string
	var labels []string
	for _, r := range records {
		target, ok := r.Get(models.ColumnInstallStatus)
		if !ok {
			continue
		}
		row := make([]string, len(StatusFeatures))
		complete := true
		for j, col := range StatusFeatures {
			v, ok := r.Get(col)
			if !ok {
				complete = false
				break
			}
			row[j] = v
		}
		if !complete {
			continue
		}
		features = append(features, row)
		labels = append(labels, target)
	}

	n := len(labels)
	if n < 2 {
		return nil, fmt.Errorf("%w: %d rows", ErrNotEnoughData, n)
	}

	classes, y := labelEncode(labels)
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: only one %s class", ErrNotEnoughData, models.ColumnInstallStatus)
	}

	// Design matrix with a bias column
	d := len(StatusFeatures)
	x := mat.NewDense(n, d+1, nil)
	for j := range StatusFeatures {
		col := make([]string, n)
		for i := range features {
			col[i] = features[i][j]
		}
		_, codes := labelEncode(col)
		values := make([]float64, n)
		for i, c := range codes {
			values[i] = float64(c)
		}
		standardize(values)
		x.SetCol(j, values)
	}
	for i := 0; i < n; i++ {
		x.Set(i, d, 1)
	}

	testSize := int(math.Ceil(float64(n) * opts.TestFraction))
	if testSize >= n {
		testSize = n - 1
	}
	perm := rand.New(rand.NewSource(opts.Seed)).Perm(n)
	testIdx, trainIdx := perm[:testSize], perm[testSize:]

	xTrain, yTrain := selectRows(x, y, trainIdx)
	xTest, yTest := selectRows(x, y, testIdx)

	weights := mat.NewDense(d+1, len(classes), nil)
	var loss float64
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		loss = gradientStep(xTrain, yTrain, weights, opts.LearningRate)
	}

	report := &models.TrainingReport{
		Features:      StatusFeatures,
		Target:        models.ColumnInstallStatus,
		Classes:       classes,
		Rows:          n,
		TrainRows:     len(trainIdx),
		TestRows:      len(testIdx),
		Epochs:        opts.Epochs,
		FinalLoss:     loss,
		TrainAccuracy: accuracy(xTrain, yTrain, weights),
		TestAccuracy:  accuracy(xTest, yTest, weights),
	}

	log.Printf("📊 Status model: %d rows, %d classes, loss=%.4f, train=%.3f, test=%.3f",
		n, len(classes), loss, report.TrainAccuracy, report.TestAccuracy)
	return report, nil
}

// labelEncode maps values to the index of their sorted distinct value
func labelEncode(values []string) ([]string, []int) {
	seen := make(map[string]bool)
	var classes []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	codes := make([]int, len(values))
	for i, v := range values {
		codes[i] = index[v]
	}
	return classes, codes
}

// standardize rescales values to zero mean and unit variance in place
func standardize(values []float64) {
	mean := floats.Sum(values) / float64(len(values))
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(len(values)))
	if std == 0 {
		std = 1
	}
	for i := range values {
		values[i] = (values[i] - mean) / std
	}
}

func selectRows(x *mat.Dense, y []int, idx []int) (*mat.Dense, []int) {
	_, c := x.Dims()
	out := mat.NewDense(len(idx), c, nil)
	labels := make([]int, len(idx))
	for i, src := range idx {
		out.SetRow(i, x.RawRowView(src))
		labels[i] = y[src]
	}
	return out, labels
}

// softmax returns the row-wise class probabilities of x*w
func softmax(x, w *mat.Dense) *mat.Dense {
	var z mat.Dense
	z.Mul(x, w)
	r, _ := z.Dims()
	for i := 0; i < r; i++ {
		row := z.RawRowView(i)
		m := floats.Max(row)
		for j := range row {
			row[j] = math.Exp(row[j] - m)
		}
		floats.Scale(1/floats.Sum(row), row)
	}
	return &z
}

// gradientStep applies one batch update and returns the cross-entropy loss before it
func gradientStep(x *mat.Dense, y []int, w *mat.Dense, lr float64) float64 {
	n, _ := x.Dims()
	p := softmax(x, w)

	var loss float64
	for i, label := range y {
		loss -= math.Log(math.Max(p.At(i, label), 1e-12))
		p.Set(i, label, p.At(i, label)-1)
	}

	var grad mat.Dense
	grad.Mul(x.T(), p)
	grad.Scale(lr/float64(n), &grad)
	w.Sub(w, &grad)

	return loss / float64(n)
}

func accuracy(x *mat.Dense, y []int, w *mat.Dense) float64 {
	if len(y) == 0 {
		return 0
	}
	p := softmax(x, w)
	correct := 0
	for i, label := range y {
		if floats.MaxIdx(p.RawRowView(i)) == label {
			correct++
		}
	}
	return float64(correct) / float64(len(y))
}
