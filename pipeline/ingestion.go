package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrEmptyFile   = errors.New("empty file?")
	ErrColumnCount = errors.New("expected two columns in the CSV file")
)

// Sample 一条记录: 里程与价格
type Sample struct {
	Mileage float64 `json:"km"`
	Price   float64 `json:"price"`
}

// DataSet 训练数据集
type DataSet struct {
	Header  []string `json:"header"`
	Samples []Sample `json:"samples"`
}

// Shape 返回行数与列数
func (ds *DataSet) Shape() (rows, cols int) {
	return len(ds.Samples), len(ds.Header)
}

// Mileage 返回里程列
func (ds *DataSet) Mileage() []float64 {
	out := make([]float64, len(ds.Samples))
	for i, s := range ds.Samples {
		out[i] = s.Mileage
	}
	return out
}

// Price 返回价格列
func (ds *DataSet) Price() []float64 {
	out := make([]float64, len(ds.Samples))
	for i, s := range ds.Samples {
		out[i] = s.Price
	}
	return out
}

// Head 返回前 n 条记录
func (ds *DataSet) Head(n int) []Sample {
	if n > len(ds.Samples) {
		n = len(ds.Samples)
	}
	return ds.Samples[:n]
}

// LoadCSV 从文件读取数据集
func LoadCSV(path string) (*DataSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ds, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV 解析带表头的两列 CSV (mileage, price)
func ReadCSV(r io.Reader) (*DataSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != 2 {
		return nil, fmt.Errorf("%w, got %d", ErrColumnCount, len(header))
	}

	ds := &DataSet{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != 2 {
			return nil, fmt.Errorf("line %d: %w, got %d", line, ErrColumnCount, len(record))
		}

		sample, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ds.Samples = append(ds.Samples, sample)
	}

	if len(ds.Samples) == 0 {
		return nil, ErrEmptyFile
	}
	return ds, nil
}

func parseSample(record []string) (Sample, error) {
	mileage, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid mileage %q", record[0])
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid price %q", record[1])
	}
	return Sample{Mileage: mileage, Price: price}, nil
}
