// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package awsutil

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Incorrect input in "
const ErrNothingToReturn = "Nothing to return from "
const ErrReturningError = "Returning error from "

// MockS3Client - expectation/replay S3 client for unit tests. Set up the
// expected requests and queued responses before the test runs, then call
// FinishTest() at the end (defer it!) to verify all expected calls were made
// and nothing unexpected happened.
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	// Expected requests, consumed in order as calls come in
	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpHeadObjectInput    []s3.HeadObjectInput
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput
	ExpDeleteObjectInput  []s3.DeleteObjectInput
	ExpCopyObjectInput    []s3.CopyObjectInput

	// Responses replayed as each request comes in. A nil entry makes the
	// call fail, GetObject and HeadObject fail with a not-found error.
	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedHeadObjectOutput    []*s3.HeadObjectOutput
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput
	QueuedDeleteObjectOutput  []*s3.DeleteObjectOutput
	QueuedCopyObjectOutput    []*s3.CopyObjectOutput
}

// FinishTest - MUST be called at the end of a unit test/example test.
// Prints any error too so example tests pick it up in their output.
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.getFinishTestResult()
	if err != nil {
		fmt.Println(err)
	}

	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	checks := []struct {
		name  string
		count int
		isExp bool
	}{
		{"ListObjectsV2", len(m.ExpListObjectsV2Input), true},
		{"HeadObject", len(m.ExpHeadObjectInput), true},
		{"GetObject", len(m.ExpGetObjectInput), true},
		{"PutObject", len(m.ExpPutObjectInput), true},
		{"DeleteObject", len(m.ExpDeleteObjectInput), true},
		{"CopyObject", len(m.ExpCopyObjectInput), true},
		{"ListObjectsV2", len(m.QueuedListObjectsV2Output), false},
		{"HeadObject", len(m.QueuedHeadObjectOutput), false},
		{"GetObject", len(m.QueuedGetObjectOutput), false},
		{"PutObject", len(m.QueuedPutObjectOutput), false},
		{"DeleteObject", len(m.QueuedDeleteObjectOutput), false},
		{"CopyObject", len(m.QueuedCopyObjectOutput), false},
	}

	for _, check := range checks {
		if check.count > 0 {
			if check.isExp {
				return fmt.Errorf("Test expected more %v calls", check.name)
			}
			return fmt.Errorf("Remaining output %v for func", check.name)
		}
	}

	return nil
}

// The AWS input structs all print deterministically so we compare calls by
// their String() form. notFoundErr is returned for a nil queued output where
// the real API would report a missing key.
func replayCall[I fmt.Stringer, O any](name string, input I, expList *[]I, outputs *[]*O, notFoundErr error) (*O, error) {
	if len(*expList) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expStr := (*expList)[0].String()
	*expList = (*expList)[1:]

	if inpStr := input.String(); expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, expStr, inpStr)
	}

	if len(*outputs) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := (*outputs)[0]
	*outputs = (*outputs)[1:]

	if result == nil {
		if notFoundErr != nil {
			return nil, notFoundErr
		}
		return nil, errors.New(ErrReturningError + name)
	}

	return result, nil
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return replayCall("ListObjectsV2", *input, &m.ExpListObjectsV2Input, &m.QueuedListObjectsV2Output, nil)
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// HeadObject reports missing keys with a bare NotFound code
	notFound := awserr.New("NotFound", ErrReturningError+"HeadObject", nil)
	return replayCall("HeadObject", *input, &m.ExpHeadObjectInput, &m.QueuedHeadObjectOutput, notFound)
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	notFound := awserr.New(s3.ErrCodeNoSuchKey, ErrReturningError+"GetObject", nil)
	return replayCall("GetObject", *input, &m.ExpGetObjectInput, &m.QueuedGetObjectOutput, notFound)
}

// PutObject - the request body is an io.Reader so it can't be compared via
// String() like the rest, it gets read out and compared separately.
func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"

	if len(m.ExpPutObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	exp := m.ExpPutObjectInput[0]
	m.ExpPutObjectInput = m.ExpPutObjectInput[1:]

	expBody := readerAsStr(exp.Body)
	inpBody := readerAsStr(input.Body)
	if expBody != inpBody {
		return nil, fmt.Errorf("%v body expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, expBody, inpBody)
	}

	expStr := exp.String()
	if inpStr := input.String(); expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, expStr, inpStr)
	}

	if len(m.QueuedPutObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedPutObjectOutput[0]
	m.QueuedPutObjectOutput = m.QueuedPutObjectOutput[1:]

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}

	return result, nil
}

func readerAsStr(r io.ReadSeeker) string {
	if r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "ERROR GETTING DATA"
	}
	r.Seek(0, io.SeekStart)
	return string(data)
}

func (m *MockS3Client) DeleteObject(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return replayCall("DeleteObject", *input, &m.ExpDeleteObjectInput, &m.QueuedDeleteObjectOutput, nil)
}

func (m *MockS3Client) CopyObject(input *s3.CopyObjectInput) (*s3.CopyObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return replayCall("CopyObject", *input, &m.ExpCopyObjectInput, &m.QueuedCopyObjectOutput, nil)
}
