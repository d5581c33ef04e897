package models

import "strconv"

// Records projects the sample into size, used and free records.
func (s FilesystemSample) Records(prefix string) []MetricRecord {
	labels := []Label{{"device", s.Device}, {"mountpoint", s.MountPoint}}
	return []MetricRecord{
		{Name: prefix + "_filesystem_size_bytes", Labels: labels, Value: Uint(s.SizeBytes)},
		{Name: prefix + "_filesystem_used_bytes", Labels: labels, Value: Uint(s.UsedBytes)},
		{Name: prefix + "_filesystem_free_bytes", Labels: labels, Value: Uint(s.FreeBytes)},
	}
}

// Record projects the sample into a single unlabeled gauge.
func (s LoadSample) Record(prefix string) MetricRecord {
	return MetricRecord{
		Name:  prefix + "_load" + strconv.Itoa(int(s.Window)),
		Value: Float(s.Value),
	}
}

// Records projects the sample into rx, tx and error records.
func (s NetworkInterfaceSample) Records(prefix string) []MetricRecord {
	labels := []Label{{"interface", s.Interface}}
	return []MetricRecord{
		{Name: prefix + "_network_rx_bytes", Labels: labels, Value: Uint(s.RxBytes)},
		{Name: prefix + "_network_tx_bytes", Labels: labels, Value: Uint(s.TxBytes)},
		{Name: prefix + "_network_errors", Labels: labels, Value: Uint(s.Errors)},
	}
}

// Record projects the sample into a single unlabeled gauge.
func (s MemorySample) Record(prefix string) MetricRecord {
	return MetricRecord{
		Name:  prefix + "_memory_" + s.Category.MetricSuffix() + "_bytes",
		Value: Int(s.Bytes),
	}
}

// Records projects the sample into read and write records.
func (s DiskIOSample) Records(prefix string) []MetricRecord {
	labels := []Label{{"device", s.Device}}
	return []MetricRecord{
		{Name: prefix + "_disk_read_bytes", Labels: labels, Value: Uint(s.ReadBytes)},
		{Name: prefix + "_disk_write_bytes", Labels: labels, Value: Uint(s.WriteBytes)},
	}
}
